package shipment

// DocumentKey identifies a document type within the per-stage checklist.
type DocumentKey string

// Document keys known to the checklist. Keys are stable identifiers used for
// storage paths and upserts; display naming is a concern of the outer layers.
const (
	DocFacturaComercial    DocumentKey = "factura_comercial"
	DocListaEmpaque        DocumentKey = "lista_empaque"
	DocCertFitosanitario   DocumentKey = "certificado_fitosanitario"
	DocCartaResponsiva     DocumentKey = "carta_responsiva"
	DocManifiestoCarga     DocumentKey = "manifiesto_carga"
	DocHojaCalidad         DocumentKey = "hoja_calidad"
	DocFotosEmbarque       DocumentKey = "fotos_embarque"
	DocPedimento           DocumentKey = "pedimento"
	DocPrefile             DocumentKey = "prefile"
	DocDoda                DocumentKey = "doda"
	DocSelloSagarpa        DocumentKey = "sello_sagarpa"
	DocBillOfLading        DocumentKey = "bill_of_lading"
	DocEntrySummary        DocumentKey = "entry_summary"
	DocRegistroTemperatura DocumentKey = "registro_temperatura"
	DocProofOfDelivery     DocumentKey = "proof_of_delivery"
)

// Requirement is one entry of a stage checklist. Required entries gate the
// advance out of their stage; optional entries are tracked but never block.
type Requirement struct {
	Key      DocumentKey
	Required bool
}

// getStageRequirements returns the static checklist per stage.
// Declaration order is the canonical display and missing-list order —
// it must never be sorted.
func getStageRequirements() map[Stage][]Requirement {
	return map[Stage][]Requirement{
		StageCooler: {
			{Key: DocFacturaComercial, Required: true},
			{Key: DocListaEmpaque, Required: true},
			{Key: DocCertFitosanitario, Required: true},
			{Key: DocCartaResponsiva, Required: true},
			{Key: DocManifiestoCarga, Required: true},
			{Key: DocHojaCalidad, Required: true},
			{Key: DocFotosEmbarque, Required: false},
		},
		StageCruce: {
			{Key: DocPedimento, Required: true},
			{Key: DocPrefile, Required: true},
			{Key: DocDoda, Required: true},
			{Key: DocSelloSagarpa, Required: false},
		},
		StageTransito: {
			{Key: DocBillOfLading, Required: true},
			{Key: DocEntrySummary, Required: true},
			{Key: DocRegistroTemperatura, Required: false},
		},
		StageEntregado: {
			{Key: DocProofOfDelivery, Required: false},
		},
	}
}

// RequirementsFor returns the checklist of the given stage in declaration order.
// Unknown stages yield an empty checklist.
func RequirementsFor(stage Stage) []Requirement {
	return getStageRequirements()[stage]
}

// IsKnownDocumentKey reports whether the key appears in any stage checklist.
func IsKnownDocumentKey(key DocumentKey) bool {
	for _, requirements := range getStageRequirements() {
		for _, requirement := range requirements {
			if requirement.Key == key {
				return true
			}
		}
	}
	return false
}
