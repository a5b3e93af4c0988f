package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	jsonpatch "gomodules.xyz/jsonpatch/v2"
	jsonpatchapply "gopkg.in/evanphx/json-patch.v4"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/clock"

	"opsharness/pkg/apis/neonforge/v1alpha1"
)

// Verb names a store operation for call counting and error injection.
type Verb string

const (
	VerbCreate      Verb = "create"
	VerbGet         Verb = "get"
	VerbList        Verb = "list"
	VerbDelete      Verb = "delete"
	VerbPatchStatus Verb = "patchStatus"
)

// Reactor may return an error to fail a call before it touches any state.
// name is empty for list.
type Reactor func(verb Verb, name string) error

var groupResource = v1alpha1.GroupVersionResource.GroupResource()

// MemoryStore is an in-process Store with API-server-like semantics.
type MemoryStore struct {
	mu sync.Mutex

	clock           clock.PassiveClock
	objects         map[string]*v1alpha1.KubeOpsTest
	resourceVersion int64
	sinks           []*eventSink
	reactor         Reactor
	calls           map[Verb]int
}

// NewMemoryStore creates an empty store. A nil clock uses the real clock.
func NewMemoryStore(c clock.PassiveClock) *MemoryStore {
	if c == nil {
		c = clock.RealClock{}
	}
	return &MemoryStore{
		clock:   c,
		objects: make(map[string]*v1alpha1.KubeOpsTest),
		calls:   make(map[Verb]int),
	}
}

// SetReactor installs r; nil removes it.
func (m *MemoryStore) SetReactor(r Reactor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactor = r
}

// Calls returns how many times verb was invoked, including failed calls.
func (m *MemoryStore) Calls(verb Verb) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[verb]
}

// begin records the call and consults the reactor. Caller holds m.mu.
func (m *MemoryStore) begin(verb Verb, name string) error {
	m.calls[verb]++
	if m.reactor != nil {
		return m.reactor(verb, name)
	}
	return nil
}

func (m *MemoryStore) nextResourceVersion() string {
	m.resourceVersion++
	return strconv.FormatInt(m.resourceVersion, 10)
}

func (m *MemoryStore) broadcast(ev WatchEvent) {
	for _, s := range m.sinks {
		s.push(WatchEvent{
			Type:      ev.Type,
			Object:    ev.Object.DeepCopy(),
			OldObject: ev.OldObject.DeepCopy(),
		})
	}
}

// Create stores a copy of obj and writes the assigned metadata back to obj.
func (m *MemoryStore) Create(ctx context.Context, obj *v1alpha1.KubeOpsTest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(VerbCreate, obj.Name); err != nil {
		return err
	}
	if obj.Name == "" {
		return apierrors.NewBadRequest("resource name may not be empty")
	}
	if _, exists := m.objects[obj.Name]; exists {
		return apierrors.NewAlreadyExists(groupResource, obj.Name)
	}

	stored := obj.DeepCopy()
	stored.TypeMeta = metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: v1alpha1.Kind}
	stored.UID = types.UID(uuid.NewString())
	stored.Generation = 1
	stored.CreationTimestamp = metav1.NewTime(m.clock.Now())
	stored.ResourceVersion = m.nextResourceVersion()
	m.objects[stored.Name] = stored

	stored.DeepCopyInto(obj)
	m.broadcast(WatchEvent{Type: EventAdded, Object: stored})
	return nil
}

// Get returns a copy of the named resource.
func (m *MemoryStore) Get(ctx context.Context, name string) (*v1alpha1.KubeOpsTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(VerbGet, name); err != nil {
		return nil, err
	}
	obj, ok := m.objects[name]
	if !ok {
		return nil, apierrors.NewNotFound(groupResource, name)
	}
	return obj.DeepCopy(), nil
}

// List returns copies of all resources ordered by name.
func (m *MemoryStore) List(ctx context.Context) ([]v1alpha1.KubeOpsTest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(VerbList, ""); err != nil {
		return nil, err
	}
	items := make([]v1alpha1.KubeOpsTest, 0, len(m.objects))
	for _, obj := range m.objects {
		items = append(items, *obj.DeepCopy())
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Delete removes the named resource.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(VerbDelete, name); err != nil {
		return err
	}
	obj, ok := m.objects[name]
	if !ok {
		return apierrors.NewNotFound(groupResource, name)
	}
	delete(m.objects, name)

	m.broadcast(WatchEvent{Type: EventDeleted, Object: obj})
	return nil
}

// PatchStatus applies ops to the JSON form of the resource and keeps only the
// resulting status, like the status subresource endpoint does. A patch that
// leaves the status unchanged writes nothing and emits no event.
func (m *MemoryStore) PatchStatus(ctx context.Context, name string, ops []jsonpatch.JsonPatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(VerbPatchStatus, name); err != nil {
		return err
	}
	current, ok := m.objects[name]
	if !ok {
		return apierrors.NewNotFound(groupResource, name)
	}

	patched, err := applyJSONPatch(current, ops)
	if err != nil {
		return apierrors.NewBadRequest(fmt.Sprintf("invalid status patch for %s: %v", name, err))
	}
	if patched.Status == current.Status {
		return nil
	}

	updated := current.DeepCopy()
	updated.Status = patched.Status
	updated.ResourceVersion = m.nextResourceVersion()
	m.objects[name] = updated

	m.broadcast(WatchEvent{Type: EventModified, Object: updated, OldObject: current})
	return nil
}

func applyJSONPatch(obj *v1alpha1.KubeOpsTest, ops []jsonpatch.JsonPatchOperation) (*v1alpha1.KubeOpsTest, error) {
	doc, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatchapply.DecodePatch(raw)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(doc)
	if err != nil {
		return nil, err
	}

	patched := &v1alpha1.KubeOpsTest{}
	if err := json.Unmarshal(out, patched); err != nil {
		return nil, err
	}
	return patched, nil
}

// Watch replays every current resource as EventAdded, then streams changes.
func (m *MemoryStore) Watch(ctx context.Context) (<-chan WatchEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sink := newEventSink(ctx)

	names := make([]string, 0, len(m.objects))
	for name := range m.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sink.push(WatchEvent{Type: EventAdded, Object: m.objects[name].DeepCopy()})
	}

	m.sinks = append(m.sinks, sink)
	go func() {
		<-ctx.Done()
		m.removeSink(sink)
	}()

	return sink.ch, nil
}

func (m *MemoryStore) removeSink(sink *eventSink) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.sinks {
		if s == sink {
			m.sinks = append(m.sinks[:i], m.sinks[i+1:]...)
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
