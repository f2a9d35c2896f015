// Package billing resolves user entitlement data from the billing provider.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/hedgecoast/signals/internal/model"
	"github.com/hedgecoast/signals/internal/repository"
)

// tierMetadataKey is the plan metadata key carrying the subscription tier.
const tierMetadataKey = "tier"

// StripeProvider resolves billing customers from the local mapping table and
// their subscriptions from the Stripe API.
type StripeProvider struct {
	customers repository.BillingCustomerRepositoryInterface
	sc        *client.API
}

// NewStripeProvider creates a Stripe-backed billing provider.
func NewStripeProvider(apiKey string, customers repository.BillingCustomerRepositoryInterface) *StripeProvider {
	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeProvider{
		customers: customers,
		sc:        sc,
	}
}

// GetCustomerForUser resolves the billing customer record for a user.
// Returns (nil, nil) when the user has no billing customer.
func (p *StripeProvider) GetCustomerForUser(ctx context.Context, userID string) (*model.BillingCustomer, error) {
	customerID, err := p.customers.GetCustomerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, nil
	}
	return &model.BillingCustomer{CustomerID: customerID}, nil
}

// GetSubscriptions lists a billing customer's subscriptions with their
// period end and plan tier.
func (p *StripeProvider) GetSubscriptions(ctx context.Context, customerID string) ([]model.BillingSubscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	var subs []model.BillingSubscription
	iter := p.sc.Subscriptions.List(params)
	for iter.Next() {
		s := iter.Subscription()
		subs = append(subs, model.BillingSubscription{
			PeriodEnd: time.Unix(s.CurrentPeriodEnd, 0),
			Tier:      subscriptionTier(s),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions for %s: %w", customerID, err)
	}

	return subs, nil
}

// subscriptionTier extracts the tier declared in the subscription's plan
// metadata. Multi-item subscriptions report the first item carrying one.
func subscriptionTier(s *stripe.Subscription) string {
	if s.Items == nil {
		return ""
	}
	for _, item := range s.Items.Data {
		if item.Plan == nil {
			continue
		}
		if tier, ok := item.Plan.Metadata[tierMetadataKey]; ok {
			return tier
		}
	}
	return ""
}
