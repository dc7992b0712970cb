package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ewastemap/internal/model"
	"ewastemap/internal/testutil"
)

func validPayload() map[string]interface{} {
	return testutil.ValidMarkerPayload()
}

func TestCreateMarker(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_create")
	svc := NewMarkerService(db)

	marker, err := svc.Create(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}

	if marker.ID == 0 {
		t.Error("marker should get an assigned ID")
	}
	if !marker.IsActive {
		t.Error("new marker should be active")
	}
	if marker.Lat != 18.5204 || marker.Lng != 73.8567 {
		t.Errorf("coordinates not stored: %v, %v", marker.Lat, marker.Lng)
	}
	if marker.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestCreateMarkerTrimsStrings(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_trim")
	svc := NewMarkerService(db)

	payload := validPayload()
	payload["state"] = "  Maharashtra  "
	payload["city"] = " Pune "
	payload["locality"] = "\tKothrud\n"
	payload["contact"] = " +91 98765 43210 "

	marker, err := svc.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}

	if marker.State != "Maharashtra" || marker.City != "Pune" || marker.Locality != "Kothrud" {
		t.Errorf("strings not trimmed: %q %q %q", marker.State, marker.City, marker.Locality)
	}
	if marker.Contact != "+91 98765 43210" {
		t.Errorf("contact not trimmed: %q", marker.Contact)
	}
}

func TestCreateMarkerStringCoordinates(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_strcoord")
	svc := NewMarkerService(db)

	payload := validPayload()
	payload["lat"] = "18.5204"
	payload["lng"] = "73.8567"

	marker, err := svc.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("create marker with string coordinates: %v", err)
	}
	if marker.Lat != 18.5204 {
		t.Errorf("lat = %v, want 18.5204", marker.Lat)
	}
}

func TestCreateMarkerMissingFields(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_missing")
	svc := NewMarkerService(db)

	_, err := svc.Create(context.Background(), map[string]interface{}{
		"lat": 18.5,
		"lng": 73.8,
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"state", "city", "locality", "category", "contact"} {
		if !strings.Contains(verr.Message, field) {
			t.Errorf("error %q should name missing field %q", verr.Message, field)
		}
	}
	if strings.Contains(verr.Message, "lat") {
		t.Errorf("error %q should not name present field lat", verr.Message)
	}
}

func TestCreateMarkerInvalidCoordinates(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_badcoord")
	svc := NewMarkerService(db)

	payload := validPayload()
	payload["lat"] = "not-a-number"

	_, err := svc.Create(context.Background(), payload)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Message, "Invalid coordinates") {
		t.Errorf("unexpected message: %q", verr.Message)
	}
}

func TestCreateMarkerOutsideIndia(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_outside")
	svc := NewMarkerService(db)

	payload := validPayload()
	payload["lat"] = 40.0
	payload["lng"] = 100.0

	_, err := svc.Create(context.Background(), payload)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Message, "India") {
		t.Errorf("error should mention the geographic restriction, got %q", verr.Message)
	}

	var count int64
	db.Model(&model.Marker{}).Count(&count)
	if count != 0 {
		t.Errorf("no marker should be persisted on validation failure, found %d", count)
	}
}

func TestCreateMarkerInvalidCategory(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_badcat")
	svc := NewMarkerService(db)

	payload := validPayload()
	payload["category"] = "invalid-category"

	_, err := svc.Create(context.Background(), payload)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, valid := range model.ValidCategories {
		if !strings.Contains(verr.Message, valid) {
			t.Errorf("error %q should name valid category %q", verr.Message, valid)
		}
	}
}

func TestDeleteMarker(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_delete")
	svc := NewMarkerService(db)
	ctx := context.Background()

	marker, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}

	if err := svc.Delete(ctx, marker.ID); err != nil {
		t.Fatalf("delete marker: %v", err)
	}

	markers, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list markers: %v", err)
	}
	for _, m := range markers {
		if m.ID == marker.ID {
			t.Errorf("deleted marker %d still listed", marker.ID)
		}
	}

	if err := svc.Delete(ctx, 9999); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("deleting unknown id: got %v, want ErrMarkerNotFound", err)
	}
}

func TestShutdownReactivateRoundTrip(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_toggle")
	svc := NewMarkerService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}

	down, err := svc.Shutdown(ctx, created.ID)
	if err != nil {
		t.Fatalf("shutdown marker: %v", err)
	}
	if down.IsActive {
		t.Error("marker should be inactive after shutdown")
	}

	up, err := svc.Reactivate(ctx, created.ID)
	if err != nil {
		t.Fatalf("reactivate marker: %v", err)
	}
	if !up.IsActive {
		t.Error("marker should be active after reactivate")
	}

	// Only is_active may change across the round trip.
	if up.Lat != created.Lat || up.Lng != created.Lng || up.Locality != created.Locality || up.Category != created.Category {
		t.Errorf("non-toggle fields mutated: %+v vs %+v", up, created)
	}

	if _, err := svc.Shutdown(ctx, 9999); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("shutdown unknown id: got %v, want ErrMarkerNotFound", err)
	}
}

func TestNearest(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_nearest")
	svc := NewMarkerService(db)
	ctx := context.Background()

	pune := validPayload()
	delhi := validPayload()
	delhi["lat"] = 28.6139
	delhi["lng"] = 77.2090
	delhi["state"] = "Delhi"
	delhi["city"] = "New Delhi"
	delhi["locality"] = "Connaught Place"

	puneMarker, err := svc.Create(ctx, pune)
	if err != nil {
		t.Fatalf("create pune marker: %v", err)
	}
	if _, err := svc.Create(ctx, delhi); err != nil {
		t.Fatalf("create delhi marker: %v", err)
	}

	// Query from Mumbai: Pune is much closer than Delhi.
	result, err := svc.Nearest(ctx, 19.0760, 72.8777)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if result.Marker.ID != puneMarker.ID {
		t.Errorf("nearest marker = %d, want pune marker %d", result.Marker.ID, puneMarker.ID)
	}
	if result.DistanceKm <= 0 {
		t.Errorf("distance should be positive, got %v", result.DistanceKm)
	}

	// Shut-down markers are excluded.
	if _, err := svc.Shutdown(ctx, puneMarker.ID); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	result, err = svc.Nearest(ctx, 19.0760, 72.8777)
	if err != nil {
		t.Fatalf("nearest after shutdown: %v", err)
	}
	if result.Marker.ID == puneMarker.ID {
		t.Error("inactive marker should not be returned as nearest")
	}
}

func TestNearestNoActiveMarkers(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_nearest_empty")
	svc := NewMarkerService(db)

	if _, err := svc.Nearest(context.Background(), 18.5, 73.8); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("nearest on empty store: got %v, want ErrMarkerNotFound", err)
	}
}

func TestExportExcel(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_export")
	svc := NewMarkerService(db)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validPayload()); err != nil {
		t.Fatalf("create marker: %v", err)
	}

	buf, err := svc.ExportExcel(ctx)
	if err != nil {
		t.Fatalf("export excel: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("export should produce a non-empty workbook")
	}
	// XLSX files are zip archives.
	if data := buf.Bytes(); len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("export should produce a zip-based xlsx file")
	}
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishMarkerEvent(event string, _ *model.Marker) {
	p.events = append(p.events, event)
}

func TestMarkerEventsPublished(t *testing.T) {
	db := testutil.OpenInMemoryDB(t, "marker_events")
	svc := NewMarkerService(db)
	pub := &recordingPublisher{}
	svc.SetEventPublisher(pub)
	ctx := context.Background()

	marker, err := svc.Create(ctx, validPayload())
	if err != nil {
		t.Fatalf("create marker: %v", err)
	}
	if _, err := svc.Shutdown(ctx, marker.ID); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := svc.Reactivate(ctx, marker.ID); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if err := svc.Delete(ctx, marker.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{EventMarkerCreated, EventMarkerShutdown, EventMarkerReactivated, EventMarkerDeleted}
	if len(pub.events) != len(want) {
		t.Fatalf("events = %v, want %v", pub.events, want)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, pub.events[i], want[i])
		}
	}
}
