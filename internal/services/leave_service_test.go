package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk_backend/internal/models"
)

func TestCreateLeaveStartsPending(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveRepo(), nil)

	created, err := svc.CreateLeave(1, CreateLeaveRequest{
		LeaveType: "vacation",
		LeaveDate: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.LeaveStatusPending), created.Status)
	assert.Nil(t, created.ReviewerID)

	_, err = svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "sick", LeaveDate: "01.04.2025"})
	assert.ErrorIs(t, err, ErrInvalidLeaveDate)
}

func TestReviewLeaveIsOneWay(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, nil)

	created, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-04-01"})
	require.NoError(t, err)

	reviewed, err := svc.ReviewLeave(created.ID, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, string(models.LeaveStatusApproved), reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, int64(7), *reviewed.ReviewerID)

	// A second decision, even the same one, is rejected.
	_, err = svc.ReviewLeave(created.ID, 8, ReviewLeaveRequest{Status: string(models.LeaveStatusRejected)})
	assert.ErrorIs(t, err, ErrLeaveAlreadyReviewed)
	_, err = svc.ReviewLeave(created.ID, 8, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	assert.ErrorIs(t, err, ErrLeaveAlreadyReviewed)
}

func TestReviewLeaveRejectsBadInput(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, nil)

	created, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-04-01"})
	require.NoError(t, err)

	_, err = svc.ReviewLeave(created.ID, 7, ReviewLeaveRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidLeaveStatus)
	_, err = svc.ReviewLeave(created.ID, 7, ReviewLeaveRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidLeaveStatus)
	_, err = svc.ReviewLeave(9999, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestGetApprovedLeavesFiltersByStatusAndRange(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, nil)

	approvedInRange, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-04-02"})
	require.NoError(t, err)
	_, err = svc.ReviewLeave(approvedInRange.ID, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	require.NoError(t, err)

	// Pending, rejected, out-of-range, and other-user leaves all stay out.
	_, err = svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "sick", LeaveDate: "2025-04-03"})
	require.NoError(t, err)
	rejected, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "sick", LeaveDate: "2025-04-04"})
	require.NoError(t, err)
	_, err = svc.ReviewLeave(rejected.ID, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusRejected)})
	require.NoError(t, err)
	outOfRange, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-05-01"})
	require.NoError(t, err)
	_, err = svc.ReviewLeave(outOfRange.ID, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	require.NoError(t, err)
	otherUser, err := svc.CreateLeave(2, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-04-02"})
	require.NoError(t, err)
	_, err = svc.ReviewLeave(otherUser.ID, 7, ReviewLeaveRequest{Status: string(models.LeaveStatusApproved)})
	require.NoError(t, err)

	leaves, err := svc.GetApprovedLeaves(1, "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "2025-04-02", leaves[0].LeaveDate)

	_, err = svc.GetApprovedLeaves(1, "2025-04-01", "bad-date")
	assert.ErrorIs(t, err, ErrInvalidLeaveDate)
}

func TestDeleteLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, nil)

	created, err := svc.CreateLeave(1, CreateLeaveRequest{LeaveType: "vacation", LeaveDate: "2025-04-01"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLeave(created.ID))
	_, err = svc.GetLeaveByID(created.ID)
	assert.ErrorIs(t, err, ErrLeaveNotFound)
	assert.ErrorIs(t, svc.DeleteLeave(created.ID), ErrLeaveNotFound)
}
