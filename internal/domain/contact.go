package domain

import (
	"context"
	"time"
)

// ServiceID identifies one of the company's service lines.
type ServiceID string

const (
	ServiceTourManager       ServiceID = "tour-manager"
	ServiceStadiumProduction ServiceID = "produccion-estadios"
	ServiceFestivalLogistics ServiceID = "logistica-festivales"
	ServiceMerchandising     ServiceID = "merchandising"
	ServiceVehicles          ServiceID = "vehiculos"
)

// ServiceOption is a selectable entry of the contact form's service field.
type ServiceOption struct {
	Value ServiceID `json:"value"`
	Label string    `json:"label"`
}

// ServiceOptions is the closed set of accepted service identifiers, in display order.
var ServiceOptions = []ServiceOption{
	{Value: ServiceTourManager, Label: "Tour Manager"},
	{Value: ServiceStadiumProduction, Label: "Producción de Estadios y Arenas"},
	{Value: ServiceFestivalLogistics, Label: "Logística de Festivales"},
	{Value: ServiceMerchandising, Label: "Merchandising"},
	{Value: ServiceVehicles, Label: "Vehículos"},
}

// IsValidServiceID reports whether s is a member of ServiceOptions.
func IsValidServiceID(s string) bool {
	for _, opt := range ServiceOptions {
		if string(opt.Value) == s {
			return true
		}
	}
	return false
}

// ContactSubmission is a validated, sanitized contact form submission.
type ContactSubmission struct {
	Name    string    `json:"name"`
	Company string    `json:"company"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Service ServiceID `json:"service"`
	Message string    `json:"message"`
}

// ContactEnvelope wraps a submission with server-side metadata for delivery.
type ContactEnvelope struct {
	ReferenceID string            `json:"reference_id"`
	ReceivedAt  time.Time         `json:"received_at"`
	Submission  ContactSubmission `json:"submission"`
}

// ContactNotifier forwards accepted submissions to the team.
type ContactNotifier interface {
	Notify(ctx context.Context, envelope ContactEnvelope) error
}

// ContactUsecase defines the contact form operations
type ContactUsecase interface {
	// Submit validates, sanitizes and forwards a raw form payload.
	// It returns the reference id of the accepted submission.
	Submit(ctx context.Context, raw map[string]interface{}) (string, error)
	ServiceOptions() []ServiceOption
}
