// Package controller holds the request-independent logic behind the values API.
// Handlers in internal/api translate HTTP into calls on ValuesController; tests
// may construct it directly without any transport.
package controller

import (
	"strconv"

	"github.com/lei/anc-web-api/internal/models"
)

// Classifier maps a deal id to its status
type Classifier func(id int) models.DealStatus

// ParityClassifier is the placeholder deal rule: even ids are shipped,
// odd ids are still processing.
// TODO: replace once the business owners define the real deal classification.
func ParityClassifier(id int) models.DealStatus {
	if id%2 == 0 {
		return models.DealStatusShipped
	}
	return models.DealStatusProcessing
}

// ValuesController answers value and deal status queries.
// It carries no mutable state and is safe for concurrent use.
type ValuesController struct {
	classify Classifier
}

// Option configures a ValuesController
type Option func(*ValuesController)

// WithClassifier overrides the deal status rule
func WithClassifier(c Classifier) Option {
	return func(vc *ValuesController) {
		if c != nil {
			vc.classify = c
		}
	}
}

// NewValuesController creates a new controller instance
func NewValuesController(opts ...Option) *ValuesController {
	vc := &ValuesController{classify: ParityClassifier}
	for _, opt := range opts {
		opt(vc)
	}
	return vc
}

// Get returns the canned value for id
func (c *ValuesController) Get(id int) models.ValueResult {
	return models.ValueResult{Value: "value " + strconv.Itoa(id)}
}

// GetDealStatus classifies the deal identified by id.
// Results outside the known statuses are reported as processing.
func (c *ValuesController) GetDealStatus(id int) models.DealStatus {
	status := c.classify(id)
	if !status.IsValid() {
		return models.DealStatusProcessing
	}
	return status
}
