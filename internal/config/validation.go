package config

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/validation"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

func (ve *ValidationErrors) positive(field string, d time.Duration) {
	if d <= 0 {
		ve.Add(field, "must be a positive duration", d)
	}
}

// Validate checks that every setting is usable.
func (c HarnessConfig) Validate() error {
	var errs ValidationErrors

	if c.Workload.Warmup < 0 {
		errs.Add("workload.warmup", "must not be negative", c.Workload.Warmup)
	}
	errs.positive("workload.createInterval", c.Workload.CreateInterval)
	errs.positive("workload.lifespan", c.Workload.Lifespan)
	errs.positive("workload.collectInterval", c.Workload.CollectInterval)

	if c.Dispatcher.Workers < 1 {
		errs.Add("dispatcher.workers", "must be at least 1", c.Dispatcher.Workers)
	}
	errs.positive("dispatcher.requeueDelay", c.Dispatcher.RequeueDelay)

	errs.positive("bootstrap.pollInterval", c.Bootstrap.PollInterval)
	errs.positive("bootstrap.schemaTimeout", c.Bootstrap.SchemaTimeout)

	if ns := c.Events.Namespace; ns != "" {
		if msgs := validation.IsDNS1123Label(ns); len(msgs) > 0 {
			errs.Add("events.namespace", strings.Join(msgs, "; "), ns)
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
