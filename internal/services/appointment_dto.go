package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/pestops-backend/internal/domain"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/domain/fieldservice"
)

const dateLayout = "2006-01-02"

type AppointmentDTO struct {
	ID         uuid.UUID   `json:"id"`
	ProjectID  uuid.UUID   `json:"projectId"`
	Number     int64       `json:"number"`
	DueDate    string      `json:"dueDate"`
	ActualDate *string     `json:"actualDate,omitempty"`
	Cancelled  bool        `json:"cancelled"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
}

type CreateAppointmentRequest struct {
	DueDate    string      `json:"dueDate"`
	ActualDate *string     `json:"actualDate,omitempty"`
	ServiceIDs []uuid.UUID `json:"serviceIds,omitempty"`
}

type TreatmentProductRequest struct {
	ID               *uuid.UUID `json:"id,omitempty"`
	ProductName      string     `json:"productName"`
	AmountAndSolvent string     `json:"amountAndSolvent"`
	ActiveIngredient string     `json:"activeIngredient"`
	EquipmentUsed    *string    `json:"equipmentUsed,omitempty"`
	AppliedTechnique *string    `json:"appliedTechnique,omitempty"`
	AppliedService   *string    `json:"appliedService,omitempty"`
}

type TreatmentProductDTO struct {
	ID               uuid.UUID `json:"id"`
	AppointmentID    uuid.UUID `json:"appointmentId"`
	Position         int       `json:"position"`
	ProductName      string    `json:"productName"`
	AmountAndSolvent string    `json:"amountAndSolvent"`
	ActiveIngredient string    `json:"activeIngredient"`
	EquipmentUsed    *string   `json:"equipmentUsed"`
	AppliedTechnique *string   `json:"appliedTechnique"`
	AppliedService   *string   `json:"appliedService"`
}

type RodentAreaRequest struct {
	ID                *uuid.UUID `json:"id,omitempty"`
	Name              string     `json:"name"`
	StationCount      int        `json:"stationCount"`
	Frequency         string     `json:"frequency"`
	ConsumptionResult string     `json:"consumptionResult"`
	Outcome           string     `json:"outcome"`
	MaterialsUsed     string     `json:"materialsUsed"`
	ProductName       string     `json:"productName"`
	ProductDose       string     `json:"productDose"`
}

// RodentRegisterPatchRequest leaves absent fields untouched. Areas absent keeps the current
// areas; an empty array removes them.
type RodentRegisterPatchRequest struct {
	ServiceDate        *string              `json:"serviceDate,omitempty"`
	Incidents          *string              `json:"incidents,omitempty"`
	CorrectiveMeasures *string              `json:"correctiveMeasures,omitempty"`
	Areas              *[]RodentAreaRequest `json:"areas,omitempty"`
}

type RodentAreaDTO struct {
	ID                uuid.UUID `json:"id"`
	Position          int       `json:"position"`
	Name              string    `json:"name"`
	StationCount      int       `json:"stationCount"`
	Frequency         string    `json:"frequency"`
	ConsumptionResult string    `json:"consumptionResult"`
	Outcome           string    `json:"outcome"`
	MaterialsUsed     string    `json:"materialsUsed"`
	ProductName       string    `json:"productName"`
	ProductDose       string    `json:"productDose"`
}

type RodentRegisterDTO struct {
	ID                 uuid.UUID       `json:"id"`
	AppointmentID      uuid.UUID       `json:"appointmentId"`
	ServiceDate        string          `json:"serviceDate"`
	Incidents          string          `json:"incidents"`
	CorrectiveMeasures string          `json:"correctiveMeasures"`
	Areas              []RodentAreaDTO `json:"areas"`
}

type CertificateDTO struct {
	ID             uuid.UUID `json:"id"`
	AppointmentID  uuid.UUID `json:"appointmentId"`
	ExpirationDate *string   `json:"expirationDate"`
}

type CertificatePatchRequest struct {
	ExpirationDate *string `json:"expirationDate"`
}

type DuplicateResponse struct {
	Message             string    `json:"message"`
	SourceAppointmentID uuid.UUID `json:"sourceAppointmentId"`
	TargetAppointmentID uuid.UUID `json:"targetAppointmentId"`
	Skipped             []string  `json:"skipped,omitempty"`
}

// ParseDate accepts a calendar date or a full RFC3339 timestamp and returns it in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t.UTC(), nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func toAppointmentDTO(a *types.Appointment, serviceIDs []uuid.UUID) AppointmentDTO {
	if serviceIDs == nil {
		serviceIDs = []uuid.UUID{}
	}
	return AppointmentDTO{
		ID:         a.ID,
		ProjectID:  a.ProjectID,
		Number:     a.Number,
		DueDate:    formatDate(a.DueDate),
		ActualDate: formatDatePtr(a.ActualDate),
		Cancelled:  a.Cancelled,
		ServiceIDs: serviceIDs,
	}
}

func toTreatmentProductDTO(p *types.TreatmentProduct) TreatmentProductDTO {
	return TreatmentProductDTO{
		ID:               p.ID,
		AppointmentID:    p.AppointmentID,
		Position:         p.Position,
		ProductName:      p.ProductName,
		AmountAndSolvent: p.AmountAndSolvent,
		ActiveIngredient: p.ActiveIngredient,
		EquipmentUsed:    p.EquipmentUsed,
		AppliedTechnique: p.AppliedTechnique,
		AppliedService:   p.AppliedService,
	}
}

func toTreatmentProductItems(in []TreatmentProductRequest) []domainagg.TreatmentProductItem {
	out := make([]domainagg.TreatmentProductItem, 0, len(in))
	for _, r := range in {
		out = append(out, domainagg.TreatmentProductItem{
			ID:               r.ID,
			ProductName:      r.ProductName,
			AmountAndSolvent: r.AmountAndSolvent,
			ActiveIngredient: r.ActiveIngredient,
			EquipmentUsed:    r.EquipmentUsed,
			AppliedTechnique: r.AppliedTechnique,
			AppliedService:   r.AppliedService,
		})
	}
	return out
}

func toRodentAreaItems(in []RodentAreaRequest) []domainagg.RodentAreaItem {
	out := make([]domainagg.RodentAreaItem, 0, len(in))
	for _, r := range in {
		out = append(out, domainagg.RodentAreaItem{
			ID:                r.ID,
			Name:              r.Name,
			StationCount:      r.StationCount,
			Frequency:         fieldservice.AreaFrequency(fieldservice.NormalizeEnum(r.Frequency)),
			ConsumptionResult: fieldservice.ConsumptionResult(fieldservice.NormalizeEnum(r.ConsumptionResult)),
			Outcome:           fieldservice.AreaOutcome(fieldservice.NormalizeEnum(r.Outcome)),
			MaterialsUsed:     fieldservice.MaterialsUsed(fieldservice.NormalizeEnum(r.MaterialsUsed)),
			ProductName:       r.ProductName,
			ProductDose:       r.ProductDose,
		})
	}
	return out
}

func toRodentRegisterDTO(r *types.RodentRegister, areas []*types.RodentArea) RodentRegisterDTO {
	out := RodentRegisterDTO{
		ID:                 r.ID,
		AppointmentID:      r.AppointmentID,
		ServiceDate:        formatDate(r.ServiceDate),
		Incidents:          r.Incidents,
		CorrectiveMeasures: r.CorrectiveMeasures,
		Areas:              make([]RodentAreaDTO, 0, len(areas)),
	}
	for _, a := range areas {
		out.Areas = append(out.Areas, RodentAreaDTO{
			ID:                a.ID,
			Position:          a.Position,
			Name:              a.Name,
			StationCount:      a.StationCount,
			Frequency:         string(a.Frequency),
			ConsumptionResult: string(a.ConsumptionResult),
			Outcome:           string(a.Outcome),
			MaterialsUsed:     string(a.MaterialsUsed),
			ProductName:       a.ProductName,
			ProductDose:       a.ProductDose,
		})
	}
	return out
}

func toCertificateDTO(c *types.Certificate) CertificateDTO {
	return CertificateDTO{
		ID:             c.ID,
		AppointmentID:  c.AppointmentID,
		ExpirationDate: formatDatePtr(c.ExpirationDate),
	}
}

// operationSheetDTO exposes the descriptive columns under camelCase keys next to the
// row identity.
func operationSheetDTO(s *types.OperationSheet) map[string]any {
	out := map[string]any{
		"id":            s.ID,
		"appointmentId": s.AppointmentID,
		"isActive":      s.IsActive,
		"version":       s.Version,
	}
	for col, val := range s.DescriptiveValues() {
		out[snakeToCamel(col)] = val
	}
	return out
}

// operationSheetChanges converts a camelCase patch body into column changes.
func operationSheetChanges(body map[string]any) (map[string]string, error) {
	changes := make(map[string]string, len(body))
	for key, raw := range body {
		var val string
		switch v := raw.(type) {
		case string:
			val = v
		case nil:
			val = ""
		default:
			return nil, fmt.Errorf("field %q must be a string", key)
		}
		changes[camelToSnake(key)] = val
	}
	return changes, nil
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
