// Package http exposes the shipment lifecycle over a REST surface built on
// echo. Handlers translate between transport shapes and application commands
// and queries; no business rules live here.
package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"shipments/internal/core/application/interception"
	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// APIError is the JSON error envelope returned by every handler.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler  commands.CreateShipmentCommandHandler
	advanceHandler         commands.AdvanceShipmentCommandHandler
	uploadDocumentHandler  commands.RecordDocumentUploadCommandHandler
	removeDocumentHandler  commands.RemoveDocumentCommandHandler
	resolveApprovalHandler commands.ResolveApprovalCommandHandler
	correspondenceHandler  commands.SendCorrespondenceCommandHandler

	// Query handlers
	getShipmentHandler         queries.GetShipmentQueryHandler
	getAllShipmentsHandler     queries.GetAllShipmentsQueryHandler
	getPendingApprovalsHandler queries.GetPendingApprovalsQueryHandler
	getDocumentURLHandler      queries.GetDocumentURLQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	advanceHandler commands.AdvanceShipmentCommandHandler,
	uploadDocumentHandler commands.RecordDocumentUploadCommandHandler,
	removeDocumentHandler commands.RemoveDocumentCommandHandler,
	resolveApprovalHandler commands.ResolveApprovalCommandHandler,
	correspondenceHandler commands.SendCorrespondenceCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getAllShipmentsHandler queries.GetAllShipmentsQueryHandler,
	getPendingApprovalsHandler queries.GetPendingApprovalsQueryHandler,
	getDocumentURLHandler queries.GetDocumentURLQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:      createShipmentHandler,
		advanceHandler:             advanceHandler,
		uploadDocumentHandler:      uploadDocumentHandler,
		removeDocumentHandler:      removeDocumentHandler,
		resolveApprovalHandler:     resolveApprovalHandler,
		correspondenceHandler:      correspondenceHandler,
		getShipmentHandler:         getShipmentHandler,
		getAllShipmentsHandler:     getAllShipmentsHandler,
		getPendingApprovalsHandler: getPendingApprovalsHandler,
		getDocumentURLHandler:      getDocumentURLHandler,
	}
}

// RegisterRoutes binds all shipment endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.POST("/shipments/:id/advance", s.AdvanceShipment)
	api.POST("/shipments/:id/correspondence", s.SendCorrespondence)
	api.PUT("/shipments/:id/documents/:key", s.UploadDocument)
	api.DELETE("/shipments/:id/documents/:key", s.RemoveDocument)
	api.GET("/shipments/:id/documents/:key/url", s.GetDocumentURL)

	api.GET("/approvals/pending", s.GetPendingApprovals)
	api.POST("/approvals/:id/resolve", s.ResolveApproval)
}

type newShipmentRequest struct {
	Folio     string `json:"folio"`
	Consignee string `json:"consignee"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

type shipmentCreatedResponse struct {
	ID string `json:"id"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req newShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, req.Folio, req.Consignee, req.Address, req.City)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentCreatedResponse{ID: shipmentID.String()})
}

type shipmentResponse struct {
	ID        string    `json:"id"`
	Folio     string    `json:"folio"`
	Stage     string    `json:"stage"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// GetShipments handles GET /api/v1/shipments.
func (s *Server) GetShipments(ctx echo.Context) error {
	query := queries.NewGetAllShipmentsQuery()

	shipments, err := s.getAllShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve shipments")
	}

	response := make([]shipmentResponse, len(shipments))
	for i, row := range shipments {
		response[i] = shipmentResponse{
			ID:        row.ID.String(),
			Folio:     row.Folio,
			Stage:     row.Stage.String(),
			Version:   row.Version,
			CreatedAt: row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type destinationResponse struct {
	Consignee string `json:"consignee"`
	Address   string `json:"address"`
	City      string `json:"city,omitempty"`
}

type cargoUnitResponse struct {
	Produce string  `json:"produce"`
	Pallets int     `json:"pallets"`
	Kilos   float64 `json:"kilos"`
}

type documentResponse struct {
	Key        string    `json:"key"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at,omitempty"`
}

type trackingEventResponse struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note,omitempty"`
}

type correspondenceResponse struct {
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	MailID     string    `json:"mail_id,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}

type shipmentDetailResponse struct {
	ID             string                   `json:"id"`
	Folio          string                   `json:"folio"`
	Stage          string                   `json:"stage"`
	Version        int                      `json:"version"`
	CreatedAt      time.Time                `json:"created_at"`
	Destinations   []destinationResponse    `json:"destinations"`
	Cargo          []cargoUnitResponse      `json:"cargo"`
	Documents      []documentResponse       `json:"documents"`
	TrackingEvents []trackingEventResponse  `json:"tracking_events"`
	Correspondence []correspondenceResponse `json:"correspondence"`
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment request: "+err.Error())
	}

	aggregate, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := shipmentDetailResponse{
		ID:        aggregate.ID().String(),
		Folio:     aggregate.Folio(),
		Stage:     aggregate.Stage().String(),
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
	}
	for _, destination := range aggregate.Destinations() {
		response.Destinations = append(response.Destinations, destinationResponse{
			Consignee: destination.Consignee(),
			Address:   destination.Address(),
			City:      destination.City(),
		})
	}
	for _, unit := range aggregate.Cargo() {
		response.Cargo = append(response.Cargo, cargoUnitResponse{
			Produce: unit.Produce(),
			Pallets: unit.Pallets(),
			Kilos:   unit.Kilos(),
		})
	}
	for _, record := range aggregate.Documents() {
		response.Documents = append(response.Documents, documentResponse{
			Key:        string(record.Key()),
			Status:     record.Status().String(),
			UploadedAt: record.UploadedAt(),
		})
	}
	for _, event := range aggregate.TrackingEvents() {
		response.TrackingEvents = append(response.TrackingEvents, trackingEventResponse{
			From:       event.FromStage().String(),
			To:         event.ToStage().String(),
			Actor:      event.Actor(),
			OccurredAt: event.OccurredAt(),
			Note:       event.Note(),
		})
	}
	for _, record := range aggregate.Correspondence() {
		response.Correspondence = append(response.Correspondence, correspondenceResponse{
			Recipients: record.Recipients(),
			Subject:    record.Subject(),
			MailID:     record.MailID(),
			SentAt:     record.SentAt(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type advanceRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note"`
}

type advanceResponse struct {
	Outcome    string   `json:"outcome"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
	Missing    []string `json:"missing,omitempty"`
	ApprovalID string   `json:"approval_id,omitempty"`
}

// AdvanceShipment handles POST /api/v1/shipments/:id/advance. A blocked gate
// is not an error: the response reports the missing documents and the
// pending approval that was opened instead.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req advanceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, req.Actor, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid advance request: "+err.Error())
	}

	result, err := s.advanceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	if result.Outcome == commands.OutcomeGateBlocked {
		missing := make([]string, len(result.Missing))
		for i, key := range result.Missing {
			missing[i] = string(key)
		}
		return ctx.JSON(http.StatusAccepted, advanceResponse{
			Outcome:    "gate_blocked",
			From:       result.From.String(),
			To:         result.To.String(),
			Missing:    missing,
			ApprovalID: result.ApprovalID,
		})
	}

	return ctx.JSON(http.StatusOK, advanceResponse{
		Outcome: "advanced",
		From:    result.From.String(),
		To:      result.To.String(),
	})
}

type correspondenceRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	HTMLBody   string   `json:"html_body"`
	Attach     []string `json:"attach,omitempty"`
}

// SendCorrespondence handles POST /api/v1/shipments/:id/correspondence.
func (s *Server) SendCorrespondence(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var req correspondenceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	attachKeys := make([]shipment.DocumentKey, len(req.Attach))
	for i, key := range req.Attach {
		attachKeys[i] = shipment.DocumentKey(key)
	}

	cmd, err := commands.NewSendCorrespondenceCommand(
		shipmentID, req.Recipients, req.Subject, req.HTMLBody, attachKeys)
	if err != nil {
		return badRequest(ctx, "Invalid correspondence request: "+err.Error())
	}

	if err = s.correspondenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// UploadDocument handles PUT /api/v1/shipments/:id/documents/:key. The
// request body is the document content; re-uploading the same key replaces
// the stored blob.
func (s *Server) UploadDocument(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	content, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "Failed to read document content")
	}

	cmd, err := commands.NewRecordDocumentUploadCommand(
		shipmentID,
		shipment.DocumentKey(ctx.Param("key")),
		content,
		ctx.Request().Header.Get(echo.HeaderContentType),
	)
	if err != nil {
		return badRequest(ctx, "Invalid document upload: "+err.Error())
	}

	if err = s.uploadDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveDocument handles DELETE /api/v1/shipments/:id/documents/:key.
func (s *Server) RemoveDocument(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewRemoveDocumentCommand(shipmentID, shipment.DocumentKey(ctx.Param("key")))
	if err != nil {
		return badRequest(ctx, "Invalid document removal: "+err.Error())
	}

	if err = s.removeDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type documentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetDocumentURL handles GET /api/v1/shipments/:id/documents/:key/url.
// Every call mints a fresh time-limited URL.
func (s *Server) GetDocumentURL(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetDocumentURLQuery(shipmentID, shipment.DocumentKey(ctx.Param("key")), 0)
	if err != nil {
		return badRequest(ctx, "Invalid document URL request: "+err.Error())
	}

	result, err := s.getDocumentURLHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, documentURLResponse{URL: result.URL, ExpiresAt: result.ExpiresAt})
}

type pendingApprovalResponse struct {
	ID          string    `json:"id"`
	ActionKey   string    `json:"action_key"`
	ContextID   string    `json:"context_id"`
	RequestedBy string    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetPendingApprovals handles GET /api/v1/approvals/pending.
func (s *Server) GetPendingApprovals(ctx echo.Context) error {
	query := queries.NewGetPendingApprovalsQuery()

	approvals, err := s.getPendingApprovalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending approvals")
	}

	response := make([]pendingApprovalResponse, len(approvals))
	for i, row := range approvals {
		response[i] = pendingApprovalResponse{
			ID:          row.ID.String(),
			ActionKey:   row.ActionKey,
			ContextID:   row.ContextID,
			RequestedBy: row.RequestedBy,
			CreatedAt:   row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type resolveApprovalRequest struct {
	Approved   bool   `json:"approved"`
	ResolvedBy string `json:"resolved_by"`
}

type resolveApprovalResponse struct {
	Outcome string `json:"outcome"`
}

// ResolveApproval handles POST /api/v1/approvals/:id/resolve.
func (s *Server) ResolveApproval(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid approval id")
	}

	var req resolveApprovalRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveApprovalCommand(requestID, req.Approved, req.ResolvedBy)
	if err != nil {
		return badRequest(ctx, "Invalid resolution: "+err.Error())
	}

	result, err := s.resolveApprovalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	outcome := "executed"
	if result.Outcome == interception.OutcomeDenied {
		outcome = "denied"
	}
	return ctx.JSON(http.StatusOK, resolveApprovalResponse{Outcome: outcome})
}

// mapError translates application errors onto HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, APIError{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrStageConflict), errors.Is(err, commands.ErrStaleApprovedStage):
		return ctx.JSON(http.StatusConflict, APIError{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, shipment.ErrShipmentAlreadyDelivered),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusUnprocessableEntity, APIError{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, APIError{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, APIError{Code: http.StatusBadRequest, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, APIError{Code: http.StatusInternalServerError, Message: message})
}
