package events

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"opsharness/pkg/apis/neonforge/v1alpha1"
	"opsharness/pkg/logging"
	pkgstrings "opsharness/pkg/strings"
)

const (
	// DefaultNamespace receives Events when none is configured.
	DefaultNamespace = "default"

	// Component is the Event source component.
	Component = "opsharness"
)

// EventGenerator creates Kubernetes Events for KubeOpsTest resources.
type EventGenerator struct {
	client    client.Client
	templates *MessageTemplateEngine
	namespace string
	clock     clock.PassiveClock
}

// NewEventGenerator creates a generator writing Events through c into namespace.
func NewEventGenerator(c client.Client, namespace string, clk clock.PassiveClock) *EventGenerator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &EventGenerator{
		client:    c,
		templates: NewMessageTemplateEngine(),
		namespace: namespace,
		clock:     clk,
	}
}

// ResourceEvent creates an Event for obj.
func (g *EventGenerator) ResourceEvent(ctx context.Context, obj *v1alpha1.KubeOpsTest, reason EventReason, data EventData) error {
	data.Name = obj.Name

	message := pkgstrings.SingleLine(g.templates.Render(reason, data), pkgstrings.MaxEventMessageLen)
	eventType := string(getEventType(reason))

	logging.Debug("events", "Generating KubeOpsTest event: reason=%s, message=%s, type=%s",
		string(reason), message, eventType)

	now := metav1.NewTime(g.clock.Now())
	event := &corev1.Event{
		ObjectMeta: metav1.ObjectMeta{
			Name:      fmt.Sprintf("%v.%x", obj.Name, now.UnixNano()),
			Namespace: g.namespace,
		},
		InvolvedObject: corev1.ObjectReference{
			APIVersion:      v1alpha1.GroupVersion.String(),
			Kind:            v1alpha1.Kind,
			Name:            obj.Name,
			UID:             obj.UID,
			ResourceVersion: obj.ResourceVersion,
		},
		Reason:         string(reason),
		Message:        message,
		Type:           eventType,
		Source:         corev1.EventSource{Component: Component},
		FirstTimestamp: now,
		LastTimestamp:  now,
		Count:          1,
	}

	if err := g.client.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create Kubernetes Event: %w", err)
	}
	return nil
}

// HandlerFailed records a failed controller handler. Recording errors are logged.
func (g *EventGenerator) HandlerFailed(ctx context.Context, obj *v1alpha1.KubeOpsTest, operation string, handlerErr error) {
	data := EventData{Operation: operation}
	if handlerErr != nil {
		data.Error = handlerErr.Error()
	}
	if err := g.ResourceEvent(ctx, obj, ReasonHandlerFailed, data); err != nil && ctx.Err() == nil {
		logging.Warn("events", "Failed to record handler failure for %s: %v", obj.Name, err)
	}
}

// Collected records the deletion of an expired resource. Recording errors are logged.
func (g *EventGenerator) Collected(ctx context.Context, obj *v1alpha1.KubeOpsTest) {
	data := EventData{}
	if !obj.CreationTimestamp.IsZero() {
		data.Age = g.clock.Since(obj.CreationTimestamp.Time)
	}
	if err := g.ResourceEvent(ctx, obj, ReasonCollected, data); err != nil && ctx.Err() == nil {
		logging.Warn("events", "Failed to record collection of %s: %v", obj.Name, err)
	}
}
