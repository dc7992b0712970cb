package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"ewastemap/internal/geo"
	"ewastemap/internal/model"
)

// ErrMarkerNotFound is returned when no marker exists with the requested ID.
var ErrMarkerNotFound = errors.New("marker not found")

// ValidationError describes a rejected marker payload
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Marker event types published to the live feed.
const (
	EventMarkerCreated     = "marker_created"
	EventMarkerDeleted     = "marker_deleted"
	EventMarkerShutdown    = "marker_shutdown"
	EventMarkerReactivated = "marker_reactivated"
)

// MarkerEventPublisher receives marker change events for live clients
type MarkerEventPublisher interface {
	PublishMarkerEvent(event string, marker *model.Marker)
}

// MarkerService handles marker business logic
type MarkerService struct {
	db     *gorm.DB
	events MarkerEventPublisher
}

// NewMarkerService creates a new marker service
func NewMarkerService(db *gorm.DB) *MarkerService {
	return &MarkerService{db: db}
}

// SetEventPublisher sets the publisher for marker change events
func (s *MarkerService) SetEventPublisher(p MarkerEventPublisher) {
	s.events = p
}

func (s *MarkerService) publish(event string, marker *model.Marker) {
	if s.events != nil {
		s.events.PublishMarkerEvent(event, marker)
	}
}

// List returns all markers in insertion order
func (s *MarkerService) List(ctx context.Context) ([]model.Marker, error) {
	var markers []model.Marker
	if err := s.db.WithContext(ctx).Order("id").Find(&markers).Error; err != nil {
		return nil, err
	}
	return markers, nil
}

// requiredFields lists the marker payload fields in validation order.
var requiredFields = []string{"lat", "lng", "state", "city", "locality", "category", "contact"}

// Create validates a raw marker payload and persists a new marker.
// Validation short-circuits at the first failing rule: missing fields,
// coordinate parsing, India bounds, category.
func (s *MarkerService) Create(ctx context.Context, payload map[string]interface{}) (*model.Marker, error) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required fields: " + strings.Join(missing, ", ")}
	}

	lat, latErr := toFloat(payload["lat"])
	lng, lngErr := toFloat(payload["lng"])
	if latErr != nil || lngErr != nil {
		return nil, &ValidationError{Message: "Invalid coordinates: lat and lng must be numbers"}
	}

	if !geo.InIndia(lat, lng) {
		return nil, &ValidationError{Message: "Location must be within India boundaries"}
	}

	category, _ := payload["category"].(string)
	if !model.IsValidCategory(category) {
		return nil, &ValidationError{Message: "Invalid category. Must be one of: " + strings.Join(model.ValidCategories, ", ")}
	}

	marker := &model.Marker{
		Lat:      lat,
		Lng:      lng,
		State:    trimField(payload["state"]),
		City:     trimField(payload["city"]),
		Locality: trimField(payload["locality"]),
		Category: category,
		Contact:  trimField(payload["contact"]),
		IsActive: true,
	}

	if err := s.db.WithContext(ctx).Create(marker).Error; err != nil {
		return nil, err
	}

	s.publish(EventMarkerCreated, marker)
	return marker, nil
}

// Delete removes a marker by ID
func (s *MarkerService) Delete(ctx context.Context, id uint) error {
	marker, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(marker).Error; err != nil {
		return err
	}

	s.publish(EventMarkerDeleted, marker)
	return nil
}

// Shutdown marks a disposal centre as shut down
func (s *MarkerService) Shutdown(ctx context.Context, id uint) (*model.Marker, error) {
	return s.setActive(ctx, id, false, EventMarkerShutdown)
}

// Reactivate marks a disposal centre as operational again
func (s *MarkerService) Reactivate(ctx context.Context, id uint) (*model.Marker, error) {
	return s.setActive(ctx, id, true, EventMarkerReactivated)
}

func (s *MarkerService) setActive(ctx context.Context, id uint, active bool, event string) (*model.Marker, error) {
	marker, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	marker.IsActive = active
	if err := s.db.WithContext(ctx).Model(marker).Update("is_active", active).Error; err != nil {
		return nil, err
	}

	s.publish(event, marker)
	return marker, nil
}

// NearestResult is an active marker together with its distance from a query point
type NearestResult struct {
	Marker     model.Marker `json:"marker"`
	DistanceKm float64      `json:"distance_km"`
}

// Nearest returns the active marker closest to the given coordinate.
func (s *MarkerService) Nearest(ctx context.Context, lat, lng float64) (*NearestResult, error) {
	var markers []model.Marker
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&markers).Error; err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return nil, ErrMarkerNotFound
	}

	best := NearestResult{Marker: markers[0], DistanceKm: geo.HaversineKm(lat, lng, markers[0].Lat, markers[0].Lng)}
	for _, m := range markers[1:] {
		if d := geo.HaversineKm(lat, lng, m.Lat, m.Lng); d < best.DistanceKm {
			best = NearestResult{Marker: m, DistanceKm: d}
		}
	}
	return &best, nil
}

// ExportExcel renders all markers as an Excel workbook.
func (s *MarkerService) ExportExcel(ctx context.Context) (*bytes.Buffer, error) {
	markers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Markers"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Latitude", "Longitude", "State", "City", "Locality", "Category", "Contact", "Active", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, m := range markers {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), m.Lat)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), m.Lng)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), m.State)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), m.City)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), m.Locality)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), m.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), m.Contact)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), m.IsActive)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), m.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *MarkerService) getByID(ctx context.Context, id uint) (*model.Marker, error) {
	var marker model.Marker
	if err := s.db.WithContext(ctx).First(&marker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarkerNotFound
		}
		return nil, err
	}
	return &marker, nil
}

// toFloat accepts JSON numbers and numeric strings as coordinates.
func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func trimField(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
