package dbtest

import (
	"testing"

	"parcel-tracking/models/organization"
	"parcel-tracking/models/parcel"
	"parcel-tracking/models/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// User inserts a user with the given username and permissions.
func User(t testing.TB, db *gorm.DB, username string, permissions ...string) *user.User {
	t.Helper()
	u := &user.User{
		Uuid:        uuid.NewString(),
		Username:    username,
		Permissions: user.StringSlice(permissions),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Organization inserts an organization with the given name.
func Organization(t testing.TB, db *gorm.DB, name string) *organization.Organization {
	t.Helper()
	org := &organization.Organization{Name: name}
	require.NoError(t, db.Create(org).Error)
	return org
}

// Department inserts a department under orgID.
func Department(t testing.TB, db *gorm.DB, orgID uint, name string) *organization.Department {
	t.Helper()
	dept := &organization.Department{OrganizationID: orgID, Name: name}
	require.NoError(t, db.Omit("Organization").Create(dept).Error)
	return dept
}

// Parcel inserts a pending parcel with minimal sender and receiver details.
func Parcel(t testing.TB, db *gorm.DB, orgID uint, trackingNumber string) *parcel.Parcel {
	t.Helper()
	p := &parcel.Parcel{
		OrganizationID: orgID,
		TrackingNumber: trackingNumber,
		ParcelType:     parcel.TypeParcel,
		Status:         parcel.StatusPending,
		SenderName:     "Sender " + trackingNumber,
		ReceiverName:   "Receiver " + trackingNumber,
	}
	require.NoError(t, db.Omit("Organization", "Department").Create(p).Error)
	return p
}
