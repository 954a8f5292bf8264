// Package realtime keeps an in-memory shipment workspace synchronized with
// persisted state by consuming change events. Events carry only entity ids;
// the reconciler refetches the full aggregate on every change and replaces
// the held copy wholesale, last writer wins.
package realtime
