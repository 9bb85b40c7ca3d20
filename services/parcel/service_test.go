package parcel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"parcel-tracking/apperr"
	"parcel-tracking/database/dbtest"
	"parcel-tracking/models/notification"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/services/events"
	parcelTypes "parcel-tracking/types/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) snapshot() []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*events.Event(nil), r.events...)
}

// waitForEvents blocks until the dispatcher has delivered n events.
func waitForEvents(t *testing.T, pub *recordingPublisher, n int) []*events.Event {
	t.Helper()
	require.Eventually(t, func() bool { return len(pub.snapshot()) >= n }, 2*time.Second, 5*time.Millisecond)
	return pub.snapshot()
}

// slowPublisher stands in for an unreachable broker.
type slowPublisher struct {
	recordingPublisher
	delay time.Duration
}

func (s *slowPublisher) Publish(ctx context.Context, e *events.Event) error {
	time.Sleep(s.delay)
	return s.recordingPublisher.Publish(ctx, e)
}

// newTestService returns a service whose clock advances one second per call.
func newTestService(t *testing.T) (*Service, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := dbtest.Open(t)
	pub := &recordingPublisher{}
	svc := NewParcelService(db, pub)

	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, db, pub
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestTransitionStatusToEveryValidStatus(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-ALL")

	previous := parcelModel.StatusPending
	for _, status := range parcelModel.GetAllStatuses() {
		detail, err := svc.TransitionStatus(ctx, p.ID, string(status), actor, nil)
		require.NoError(t, err, status)

		assert.Equal(t, status, detail.Status)
		require.NotEmpty(t, detail.History)
		assert.Equal(t, previous, detail.History[0].PreviousStatus)
		assert.Equal(t, status, detail.History[0].NewStatus)
		previous = status
	}

	assert.EqualValues(t, len(parcelModel.GetAllStatuses()),
		countRows(t, db, &parcelModel.StatusHistory{}, "parcel_id = ?", p.ID))
}

func TestTransitionStatusRejectsInvalidStatus(t *testing.T) {
	svc, db, pub := newTestService(t)
	ctx := context.Background()
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-BAD")

	for _, raw := range []string{"", "shipped", "DELIVERED", "in transit"} {
		_, err := svc.TransitionStatus(ctx, p.ID, raw, actor, nil)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), raw)
		assert.Equal(t, "Invalid status", apperr.Message(err))
	}

	var reloaded parcelModel.Parcel
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, parcelModel.StatusPending, reloaded.Status)
	assert.Zero(t, countRows(t, db, &parcelModel.StatusHistory{}, "parcel_id = ?", p.ID))
	assert.Zero(t, countRows(t, db, &notification.Notification{}, "parcel_id = ?", p.ID))
	assert.Empty(t, pub.snapshot())
}

func TestTransitionStatusMissingParcel(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TransitionStatus(context.Background(), 999, "delivered", nil, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTransitionStatusScenario(t *testing.T) {
	svc, db, pub := newTestService(t)
	ctx := context.Background()
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-1")

	detail, err := svc.TransitionStatus(ctx, p.ID, "in_transit", actor, strPtr("left hub"))
	require.NoError(t, err)

	assert.Equal(t, parcelModel.StatusInTransit, detail.Status)
	assert.Equal(t, "In Transit", detail.StatusDisplay)
	assert.Nil(t, detail.DeliveredAt)
	require.Len(t, detail.History, 1)
	assert.Equal(t, parcelModel.StatusPending, detail.History[0].PreviousStatus)
	assert.Equal(t, parcelModel.StatusInTransit, detail.History[0].NewStatus)
	require.NotNil(t, detail.History[0].ChangedByUsername)
	assert.Equal(t, "operator", *detail.History[0].ChangedByUsername)
	assert.Equal(t, "left hub", *detail.History[0].Notes)

	var notes []notification.Notification
	require.NoError(t, db.Where("user_id = ?", actor.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, "Status Updated: TN-1", notes[0].Title)
	assert.Equal(t, "Parcel status changed to in_transit", notes[0].Message)
	assert.False(t, notes[0].IsRead)
	assert.Equal(t, p.ID, *notes[0].ParcelID)

	published := waitForEvents(t, pub, 2)
	require.Len(t, published, 2)
	assert.Equal(t, events.TypeStatusChanged, published[0].EventType)
	assert.Equal(t, "pending", published[0].PreviousStatus)
	assert.Equal(t, "in_transit", published[0].NewStatus)
	assert.Equal(t, events.TypeNotificationCreated, published[1].EventType)
	assert.Equal(t, notes[0].ID, *published[1].NotificationID)

	// delivered stamps delivered_at, leaving delivered keeps it.
	delivered, err := svc.TransitionStatus(ctx, p.ID, "delivered", actor, nil)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
	stamped := *delivered.DeliveredAt

	returned, err := svc.TransitionStatus(ctx, p.ID, "returned", actor, nil)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusReturned, returned.Status)
	require.NotNil(t, returned.DeliveredAt)
	assert.True(t, stamped.Equal(*returned.DeliveredAt))

	require.Len(t, returned.History, 3)
	assert.Equal(t, parcelModel.StatusReturned, returned.History[0].NewStatus)
	assert.Equal(t, parcelModel.StatusDelivered, returned.History[0].PreviousStatus)
}

func TestTransitionStatusRedeliveryRestampsDeliveredAt(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-RE")

	first, err := svc.TransitionStatus(ctx, p.ID, "delivered", nil, nil)
	require.NoError(t, err)
	_, err = svc.TransitionStatus(ctx, p.ID, "in_transit", nil, nil)
	require.NoError(t, err)
	second, err := svc.TransitionStatus(ctx, p.ID, "delivered", nil, nil)
	require.NoError(t, err)

	assert.True(t, second.DeliveredAt.After(*first.DeliveredAt))
}

func TestTransitionStatusAnonymousActor(t *testing.T) {
	svc, db, pub := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-ANON")

	detail, err := svc.TransitionStatus(ctx, p.ID, "received", nil, nil)
	require.NoError(t, err)

	require.Len(t, detail.History, 1)
	assert.Nil(t, detail.History[0].ChangedBy)
	assert.Nil(t, detail.History[0].ChangedByUsername)

	var notes []notification.Notification
	require.NoError(t, db.Where("parcel_id = ?", p.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Nil(t, notes[0].UserID)

	// Ownerless notifications are not broadcast.
	published := waitForEvents(t, pub, 1)
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeStatusChanged, published[0].EventType)
}

func TestTransitionStatusSurvivesPublisherFailure(t *testing.T) {
	svc, db, pub := newTestService(t)
	pub.err = errors.New("redis unavailable")
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-PUB")

	detail, err := svc.TransitionStatus(context.Background(), p.ID, "lost", actor, nil)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusLost, detail.Status)
	assert.Len(t, waitForEvents(t, pub, 2), 2)
}

func TestTransitionStatusDoesNotWaitForBroker(t *testing.T) {
	db := dbtest.Open(t)
	pub := &slowPublisher{delay: 500 * time.Millisecond}
	svc := NewParcelService(db, pub)
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-SLOW")

	start := time.Now()
	detail, err := svc.TransitionStatus(context.Background(), p.ID, "in_transit", actor, nil)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusInTransit, detail.Status)
	assert.Less(t, elapsed, 250*time.Millisecond)

	// Both events still arrive once the broker catches up.
	require.Eventually(t, func() bool { return len(pub.snapshot()) == 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestTransitionStatusRollsBackWhenNotificationFails(t *testing.T) {
	svc, db, pub := newTestService(t)
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-ATOMIC")

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_notifications", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*notification.Notification); ok {
			_ = tx.AddError(errors.New("notification store unavailable"))
		}
	}))

	_, err := svc.TransitionStatus(context.Background(), p.ID, "delivered", actor, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification store unavailable")

	var reloaded parcelModel.Parcel
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, parcelModel.StatusPending, reloaded.Status)
	assert.Nil(t, reloaded.DeliveredAt)
	assert.Zero(t, countRows(t, db, &parcelModel.StatusHistory{}, "parcel_id = ?", p.ID))
	assert.Zero(t, countRows(t, db, &notification.Notification{}, "parcel_id = ?", p.ID))
	assert.Empty(t, pub.snapshot())
}

func TestFindByTrackingNumber(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	dbtest.Parcel(t, db, org.ID, "TN-FIND")

	detail, err := svc.FindByTrackingNumber(ctx, "TN-FIND")
	require.NoError(t, err)
	assert.Equal(t, "TN-FIND", detail.TrackingNumber)
	assert.Equal(t, "Acme", detail.OrganizationName)
	assert.NotNil(t, detail.History)

	_, err = svc.FindByTrackingNumber(ctx, "DOES-NOT-EXIST")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.FindByTrackingNumber(ctx, "tn-find")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.FindByTrackingNumber(ctx, "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func newWriteRequest(orgID uint, trackingNumber string) *parcelTypes.WriteRequest {
	return &parcelTypes.WriteRequest{
		Organization:   uintPtr(orgID),
		TrackingNumber: strPtr(trackingNumber),
		SenderName:     strPtr("Alice"),
		ReceiverName:   strPtr("Bob"),
	}
}

func TestCreateDefaultsAndLinksCreator(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	creator := dbtest.User(t, db, "clerk")
	receiver := dbtest.User(t, db, "recipient")
	org := dbtest.Organization(t, db, "Acme")

	req := newWriteRequest(org.ID, "TN-NEW")
	req.ReceiverUserUUID = strPtr(receiver.Uuid)
	req.SenderEmail = strPtr("")

	detail, err := svc.Create(ctx, req, creator)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusPending, detail.Status)
	assert.Equal(t, parcelModel.TypeParcel, detail.ParcelType)
	assert.Equal(t, "Parcel", detail.TypeDisplay)
	assert.Nil(t, detail.SenderEmail)
	assert.Empty(t, detail.History)

	mine, err := svc.ListForUser(ctx, creator)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "TN-NEW", mine[0].TrackingNumber)

	theirs, err := svc.ListForUser(ctx, receiver)
	require.NoError(t, err)
	require.Len(t, theirs, 1)

	var link parcelModel.DeliveryHistory
	require.NoError(t, db.Where("user_id = ?", receiver.ID).First(&link).Error)
	assert.Equal(t, parcelModel.RoleReceiver, link.Role)
}

func TestCreateValidation(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	other := dbtest.Organization(t, db, "Other")
	otherDept := dbtest.Department(t, db, other.ID, "Mailroom")

	cases := map[string]func(*parcelTypes.WriteRequest){
		"unknown type":         func(r *parcelTypes.WriteRequest) { r.ParcelType = strPtr("crate") },
		"unknown status":       func(r *parcelTypes.WriteRequest) { r.Status = strPtr("shipped") },
		"missing organization": func(r *parcelTypes.WriteRequest) { r.Organization = nil },
		"unknown organization": func(r *parcelTypes.WriteRequest) { r.Organization = uintPtr(9999) },
		"foreign department":   func(r *parcelTypes.WriteRequest) { r.Department = uintPtr(otherDept.ID) },
		"blank tracking":       func(r *parcelTypes.WriteRequest) { r.TrackingNumber = strPtr("  ") },
		"missing sender":       func(r *parcelTypes.WriteRequest) { r.SenderName = nil },
		"unknown receiver":     func(r *parcelTypes.WriteRequest) { r.ReceiverUserUUID = strPtr("9b2f7c1e-0000-4000-8000-000000000000") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := newWriteRequest(org.ID, "TN-"+name)
			mutate(req)
			_, err := svc.Create(ctx, req, nil)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), err)
		})
	}

	assert.Zero(t, countRows(t, db, &parcelModel.Parcel{}, "1 = 1"))
}

func TestCreateRejectsDuplicateTrackingNumber(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")

	_, err := svc.Create(ctx, newWriteRequest(org.ID, "TN-DUP"), nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, newWriteRequest(org.ID, "TN-DUP"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, "tracking_number", apperr.FieldOf(err))
}

func TestCreateDeliveredStampsDeliveredAt(t *testing.T) {
	svc, db, _ := newTestService(t)
	org := dbtest.Organization(t, db, "Acme")

	req := newWriteRequest(org.ID, "TN-DONE")
	req.Status = strPtr("delivered")
	detail, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	assert.NotNil(t, detail.DeliveredAt)
}

func TestUpdateExcludesSelfFromConflictCheck(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	first := dbtest.Parcel(t, db, org.ID, "TN-A")
	dbtest.Parcel(t, db, org.ID, "TN-B")

	req := newWriteRequest(org.ID, "TN-A")
	req.SenderName = strPtr("Alice Updated")
	detail, err := svc.Update(ctx, first.ID, req, Full)
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", detail.SenderName)

	_, err = svc.Update(ctx, first.ID, &parcelTypes.WriteRequest{TrackingNumber: strPtr("TN-B")}, Partial)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUpdatePartialAndFull(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	dept := dbtest.Department(t, db, org.ID, "Mailroom")
	p := dbtest.Parcel(t, db, org.ID, "TN-UP")

	detail, err := svc.Update(ctx, p.ID, &parcelTypes.WriteRequest{
		Department:      uintPtr(dept.ID),
		CurrentLocation: strPtr("Dock 4"),
		ParcelType:      strPtr("letter"),
	}, Partial)
	require.NoError(t, err)
	assert.Equal(t, "TN-UP", detail.TrackingNumber)
	assert.Equal(t, parcelModel.TypeLetter, detail.ParcelType)
	require.NotNil(t, detail.DepartmentName)
	assert.Equal(t, "Mailroom", *detail.DepartmentName)
	assert.Equal(t, "Dock 4", *detail.CurrentLocation)

	_, err = svc.Update(ctx, p.ID, &parcelTypes.WriteRequest{SenderName: strPtr("x")}, Full)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.Update(ctx, p.ID, &parcelTypes.WriteRequest{ParcelType: strPtr("crate")}, Partial)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.Update(ctx, 4242, &parcelTypes.WriteRequest{}, Partial)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateStatusWithoutHistory(t *testing.T) {
	svc, db, _ := newTestService(t)
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-RAW")

	detail, err := svc.Update(context.Background(), p.ID, &parcelTypes.WriteRequest{Status: strPtr("delivered")}, Partial)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusDelivered, detail.Status)
	assert.NotNil(t, detail.DeliveredAt)
	assert.Empty(t, detail.History)
}

func TestListForAnonymousIsEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	items, err := svc.ListForUser(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListFiltersSearchOrderingAndPaging(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	acme := dbtest.Organization(t, db, "Acme")
	other := dbtest.Organization(t, db, "Other")

	for _, tn := range []string{"TN-C", "TN-A", "TN-B"} {
		dbtest.Parcel(t, db, acme.ID, tn)
	}
	dbtest.Parcel(t, db, other.ID, "ZZ-1")
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("tracking_number = ?", "TN-B").
		Update("status", parcelModel.StatusDelivered).Error)

	page, err := svc.List(ctx, parcelTypes.ListFilter{OrganizationID: uintPtr(acme.ID), Ordering: "tracking_number"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Count)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PageSize)
	require.Len(t, page.Results, 3)
	assert.Equal(t, "TN-A", page.Results[0].TrackingNumber)
	assert.Equal(t, "TN-C", page.Results[2].TrackingNumber)

	page, err = svc.List(ctx, parcelTypes.ListFilter{Status: "delivered"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "TN-B", page.Results[0].TrackingNumber)

	page, err = svc.List(ctx, parcelTypes.ListFilter{Search: "receiver zz"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "ZZ-1", page.Results[0].TrackingNumber)

	page, err = svc.List(ctx, parcelTypes.ListFilter{Ordering: "-tracking_number", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Count)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "TN-B", page.Results[0].TrackingNumber)
	assert.Equal(t, "TN-A", page.Results[1].TrackingNumber)

	today := time.Now().UTC()
	page, err = svc.List(ctx, parcelTypes.ListFilter{CreatedDate: &today})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Count)

	yesterday := today.AddDate(0, 0, -1)
	page, err = svc.List(ctx, parcelTypes.ListFilter{CreatedDate: &yesterday})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}

func TestListSearchMatchesWildcardsLiterally(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	org := dbtest.Organization(t, db, "Acme")
	dbtest.Parcel(t, db, org.ID, "TN_100")
	dbtest.Parcel(t, db, org.ID, "TNX100")
	dbtest.Parcel(t, db, org.ID, "TN-50%")

	page, err := svc.List(ctx, parcelTypes.ListFilter{Search: "tn_"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "TN_100", page.Results[0].TrackingNumber)

	page, err = svc.List(ctx, parcelTypes.ListFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "TN-50%", page.Results[0].TrackingNumber)

	page, err = svc.List(ctx, parcelTypes.ListFilter{Search: `\`})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Zero(t, page.PageSize)
}

func TestDeleteCascades(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	actor := dbtest.User(t, db, "operator")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-DEL")

	_, err := svc.TransitionStatus(ctx, p.ID, "received", actor, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Zero(t, countRows(t, db, &parcelModel.StatusHistory{}, "parcel_id = ?", p.ID))
	assert.Zero(t, countRows(t, db, &notification.Notification{}, "parcel_id = ?", p.ID))

	assert.True(t, errors.Is(svc.Delete(ctx, p.ID), apperr.ErrNotFound))
}

func TestGenerateTrackingNumber(t *testing.T) {
	svc, _, _ := newTestService(t)

	a, err := svc.GenerateTrackingNumber(context.Background())
	require.NoError(t, err)
	b, err := svc.GenerateTrackingNumber(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^TRK-[0-9A-HJKMNP-TV-Z]{26}$`, a)
	assert.NotEqual(t, a, b)
}
