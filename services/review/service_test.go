package review

import (
	"context"
	"errors"
	"testing"

	"parcel-tracking/apperr"
	"parcel-tracking/database/dbtest"
	parcelModel "parcel-tracking/models/parcel"
	reviewTypes "parcel-tracking/types/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validRequest(parcelID uint) *reviewTypes.ReviewRequest {
	return &reviewTypes.ReviewRequest{
		Parcel:                 &parcelID,
		Rating:                 intPtr(5),
		Title:                  strPtr("Fast and careful"),
		Comment:                strPtr("Arrived a day early."),
		DeliverySpeedRating:    intPtr(5),
		PackagingQualityRating: intPtr(4),
		CommunicationRating:    intPtr(4),
	}
}

func TestCreateSetsReviewerAndDefaults(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewReviewService(db)
	reviewer := dbtest.User(t, db, "customer")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-R1")

	got, err := svc.Create(context.Background(), validRequest(p.ID), reviewer)
	require.NoError(t, err)
	assert.Equal(t, reviewer.ID, got.Reviewer)
	assert.Equal(t, "customer", got.ReviewerUsername)
	assert.Equal(t, "TN-R1", got.ParcelTracking)
	assert.True(t, got.WouldRecommend)
}

func TestCreateRejectsOutOfRangeRatings(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewReviewService(db)
	reviewer := dbtest.User(t, db, "customer")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-R2")

	mutations := map[string]func(*reviewTypes.ReviewRequest){
		"rating 0":        func(r *reviewTypes.ReviewRequest) { r.Rating = intPtr(0) },
		"rating 6":        func(r *reviewTypes.ReviewRequest) { r.Rating = intPtr(6) },
		"speed 0":         func(r *reviewTypes.ReviewRequest) { r.DeliverySpeedRating = intPtr(0) },
		"packaging 6":     func(r *reviewTypes.ReviewRequest) { r.PackagingQualityRating = intPtr(6) },
		"communication 9": func(r *reviewTypes.ReviewRequest) { r.CommunicationRating = intPtr(9) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := validRequest(p.ID)
			mutate(req)
			_, err := svc.Create(context.Background(), req, reviewer)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), err)
		})
	}

	var n int64
	require.NoError(t, db.Model(&parcelModel.DeliveryReview{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateRules(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	reviewer := dbtest.User(t, db, "customer")
	org := dbtest.Organization(t, db, "Acme")
	p := dbtest.Parcel(t, db, org.ID, "TN-R3")

	_, err := svc.Create(ctx, validRequest(p.ID), nil)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.Create(ctx, validRequest(4242), reviewer)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	req := validRequest(p.ID)
	req.Comment = nil
	_, err = svc.Create(ctx, req, reviewer)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	req = validRequest(p.ID)
	req.WouldRecommend = boolPtr(false)
	first, err := svc.Create(ctx, req, reviewer)
	require.NoError(t, err)
	assert.False(t, first.WouldRecommend)

	_, err = svc.Create(ctx, validRequest(p.ID), reviewer)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUpdateListDelete(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewReviewService(db)
	ctx := context.Background()
	reviewer := dbtest.User(t, db, "customer")
	org := dbtest.Organization(t, db, "Acme")
	p1 := dbtest.Parcel(t, db, org.ID, "TN-U1")
	p2 := dbtest.Parcel(t, db, org.ID, "TN-U2")

	r1, err := svc.Create(ctx, validRequest(p1.ID), reviewer)
	require.NoError(t, err)
	low := validRequest(p2.ID)
	low.Rating = intPtr(2)
	low.Title = strPtr("Dented box")
	r2, err := svc.Create(ctx, low, reviewer)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, r1.ID, &reviewTypes.ReviewRequest{Rating: intPtr(3)}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Fast and careful", updated.Title)

	_, err = svc.Update(ctx, r1.ID, &reviewTypes.ReviewRequest{Rating: intPtr(7)}, false)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = svc.Update(ctx, r1.ID, &reviewTypes.ReviewRequest{Parcel: &p2.ID}, false)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = svc.Update(ctx, r1.ID, &reviewTypes.ReviewRequest{Rating: intPtr(3)}, true)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	byRating, err := svc.List(ctx, reviewTypes.ListFilter{Ordering: "rating"})
	require.NoError(t, err)
	require.Len(t, byRating, 2)
	assert.Equal(t, r2.ID, byRating[0].ID)

	searched, err := svc.List(ctx, reviewTypes.ListFilter{Search: "dented"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, r2.ID, searched[0].ID)

	forParcel, err := svc.List(ctx, reviewTypes.ListFilter{ParcelID: &p1.ID})
	require.NoError(t, err)
	require.Len(t, forParcel, 1)

	require.NoError(t, svc.Delete(ctx, r1.ID))
	_, err = svc.Get(ctx, r1.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
