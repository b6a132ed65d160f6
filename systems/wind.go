package systems

import "github.com/pthm-cable/gust/linalg"

// WindTunnel is a user-driven wind source. From is the fixed gesture origin;
// Wind points from the current pointer position back to From, so the field
// is pulled against the drag direction.
type WindTunnel struct {
	ID   string
	From linalg.Vector2
	Wind linalg.Vector2
}

// To returns the far end of the tunnel, From + Wind.
func (w WindTunnel) To() linalg.Vector2 {
	return linalg.Add(w.From, w.Wind)
}

// Segment returns the directed segment From -> From + Wind.
func (w WindTunnel) Segment() linalg.LineSegment {
	return linalg.NewLineSegment(w.From, w.To())
}

// WindRegistry holds the live wind tunnels keyed by id, in creation order.
// It is not safe for concurrent use; the game serializes access through its
// command queue.
type WindRegistry struct {
	tunnels map[string]*WindTunnel
	order   []string
}

// NewWindRegistry creates an empty registry.
func NewWindRegistry() *WindRegistry {
	return &WindRegistry{tunnels: make(map[string]*WindTunnel)}
}

// Add starts tracking a tunnel at origin with zero wind. Adding an id that is
// already live restarts that gesture in place and returns true.
func (r *WindRegistry) Add(id string, origin linalg.Vector2) (restarted bool) {
	if t, ok := r.tunnels[id]; ok {
		t.From = origin
		t.Wind = linalg.Zero()
		return true
	}
	r.tunnels[id] = &WindTunnel{ID: id, From: origin}
	r.order = append(r.order, id)
	return false
}

// Move sets the tunnel's wind to origin - point. Unknown ids are ignored.
func (r *WindRegistry) Move(id string, point linalg.Vector2) bool {
	t, ok := r.tunnels[id]
	if !ok {
		return false
	}
	t.Wind = linalg.Subtract(t.From, point)
	return true
}

// Remove stops tracking a tunnel. Unknown ids are ignored.
func (r *WindRegistry) Remove(id string) bool {
	if _, ok := r.tunnels[id]; !ok {
		return false
	}
	delete(r.tunnels, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the tunnel with the given id.
func (r *WindRegistry) Get(id string) (WindTunnel, bool) {
	t, ok := r.tunnels[id]
	if !ok {
		return WindTunnel{}, false
	}
	return *t, true
}

// Len returns the number of live tunnels.
func (r *WindRegistry) Len() int {
	return len(r.order)
}

// AppendTunnels appends copies of the live tunnels to dst in creation order.
func (r *WindRegistry) AppendTunnels(dst []WindTunnel) []WindTunnel {
	for _, id := range r.order {
		dst = append(dst, *r.tunnels[id])
	}
	return dst
}

// Tunnels returns copies of the live tunnels in creation order.
func (r *WindRegistry) Tunnels() []WindTunnel {
	return r.AppendTunnels(make([]WindTunnel, 0, len(r.order)))
}
