package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hedgecoast/signals/internal/config"
	"github.com/hedgecoast/signals/internal/model"
)

// MockAlertMatcher for testing
type MockAlertMatcher struct {
	mock.Mock
}

func (m *MockAlertMatcher) Match(ctx context.Context, event model.MoveEvent) ([]model.AlertRule, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AlertRule), args.Error(1)
}

// MockEntitlementFilter for testing
type MockEntitlementFilter struct {
	mock.Mock
}

func (m *MockEntitlementFilter) FilterEntitled(ctx context.Context, rules []model.AlertRule) []model.AlertRule {
	args := m.Called(ctx, rules)
	return args.Get(0).([]model.AlertRule)
}

// MockEmailSender for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// MockSMSSender for testing
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

func dispatchEvent() model.MoveEvent {
	return model.MoveEvent{
		Symbol:           "ABC",
		WindowMinutes:    60,
		ThresholdPercent: 10,
		MoveType:         "drop",
		MinDropPercent:   -12,
		PriceAtMinDrop:   decimal.RequireFromString("88"),
		EpochAtMinDrop:   1609684260,
	}
}

func TestDispatchService_Dispatch(t *testing.T) {
	t.Parallel()

	event := dispatchEvent()

	emailRule := model.AlertRule{
		AlertID: "a1", UserID: "paid", Symbol: "ABC",
		WindowMinutes: 60, ThresholdPercent: 10, MoveType: "drop",
		NotifyToEmail: true, NotifyEmail: "paid@example.com",
	}
	smsRule := model.AlertRule{
		AlertID: "a2", UserID: "unpaid", Symbol: model.WildcardSymbol,
		WindowMinutes: 60, ThresholdPercent: 10, MoveType: "drop",
		NotifyToSMS: true, NotifySMS: "+15550001111",
	}

	matcher := new(MockAlertMatcher)
	matcher.On("Match", mock.Anything, event).
		Return([]model.AlertRule{emailRule, smsRule}, nil)

	// SMS is gated, so only the entitled subset feeds the SMS set. The
	// unpaid wildcard user is filtered out.
	entitlement := new(MockEntitlementFilter)
	entitlement.On("FilterEntitled", mock.Anything, []model.AlertRule{emailRule, smsRule}).
		Return([]model.AlertRule{emailRule})

	email := new(MockEmailSender)
	email.On("Send", mock.Anything, "paid@example.com", "Market Move Signal", mock.AnythingOfType("string")).
		Return(nil)

	sms := new(MockSMSSender)

	svc := NewDispatchService(
		matcher, entitlement, NewReportService(), email, sms,
		config.ChannelPolicy{GateEmail: false, GateSMS: true},
		"Market Move Signal", nil,
	)

	result, err := svc.Dispatch(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, []string{"paid@example.com"}, result.Emails)
	assert.Equal(t, []string{}, result.SMS)

	email.AssertNumberOfCalls(t, "Send", 1)
	sms.AssertNotCalled(t, "Send")
	matcher.AssertExpectations(t)
	entitlement.AssertExpectations(t)
}

func TestDispatchService_Dispatch_SendFailureIsolated(t *testing.T) {
	t.Parallel()

	event := dispatchEvent()

	rules := []model.AlertRule{
		{AlertID: "a1", UserID: "u1", Symbol: "ABC", NotifyToEmail: true, NotifyEmail: "first@example.com"},
		{AlertID: "a2", UserID: "u2", Symbol: "ABC", NotifyToEmail: true, NotifyEmail: "second@example.com"},
	}

	matcher := new(MockAlertMatcher)
	matcher.On("Match", mock.Anything, event).Return(rules, nil)

	entitlement := new(MockEntitlementFilter)
	entitlement.On("FilterEntitled", mock.Anything, rules).Return([]model.AlertRule{})

	email := new(MockEmailSender)
	email.On("Send", mock.Anything, "first@example.com", mock.Anything, mock.Anything).
		Return(errors.New("mailbox unavailable"))
	email.On("Send", mock.Anything, "second@example.com", mock.Anything, mock.Anything).
		Return(nil)

	sms := new(MockSMSSender)

	svc := NewDispatchService(
		matcher, entitlement, NewReportService(), email, sms,
		config.ChannelPolicy{GateSMS: true},
		"Market Move Signal", nil,
	)

	result, err := svc.Dispatch(context.Background(), event)
	require.NoError(t, err)

	// Both destinations were attempted and both are reported, the failed
	// send only shows up in the logs.
	assert.Equal(t, []string{"first@example.com", "second@example.com"}, result.Emails)
	email.AssertNumberOfCalls(t, "Send", 2)
}

func TestDispatchService_Dispatch_MatchError(t *testing.T) {
	t.Parallel()

	event := dispatchEvent()

	matcher := new(MockAlertMatcher)
	matcher.On("Match", mock.Anything, event).Return(nil, errors.New("db down"))

	svc := NewDispatchService(
		matcher, new(MockEntitlementFilter), NewReportService(),
		new(MockEmailSender), new(MockSMSSender),
		config.ChannelPolicy{GateSMS: true},
		"Market Move Signal", nil,
	)

	result, err := svc.Dispatch(context.Background(), event)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestDispatchService_Dispatch_NoGatingSkipsEntitlement(t *testing.T) {
	t.Parallel()

	event := dispatchEvent()

	rule := model.AlertRule{
		AlertID: "a1", UserID: "u1", Symbol: "ABC",
		NotifyToSMS: true, NotifySMS: "+15550001111",
	}

	matcher := new(MockAlertMatcher)
	matcher.On("Match", mock.Anything, event).Return([]model.AlertRule{rule}, nil)

	entitlement := new(MockEntitlementFilter)

	sms := new(MockSMSSender)
	sms.On("Send", mock.Anything, "+15550001111", mock.AnythingOfType("string")).Return(nil)

	svc := NewDispatchService(
		matcher, entitlement, NewReportService(),
		new(MockEmailSender), sms,
		config.ChannelPolicy{},
		"Market Move Signal", nil,
	)

	result, err := svc.Dispatch(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, []string{"+15550001111"}, result.SMS)
	entitlement.AssertNotCalled(t, "FilterEntitled")
}
