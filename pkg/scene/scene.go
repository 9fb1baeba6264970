package scene

import "slices"

// Scene is a flat list of objects. Insertion order is draw order.
type Scene struct {
	objects []*Object
}

// New creates a scene holding objs in order.
func New(objs ...*Object) *Scene {
	s := &Scene{}
	for _, o := range objs {
		s.Add(o)
	}
	return s
}

// Add appends o. Nil objects are ignored.
func (s *Scene) Add(o *Object) {
	if o == nil {
		return
	}
	s.objects = append(s.objects, o)
}

// Remove deletes the first occurrence of o and reports whether it was found.
func (s *Scene) Remove(o *Object) bool {
	i := slices.Index(s.objects, o)
	if i < 0 {
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	return true
}

// Find returns the first object named name.
func (s *Scene) Find(name string) (*Object, bool) {
	for _, o := range s.objects {
		if o.name == name {
			return o, true
		}
	}
	return nil, false
}

// Objects returns the objects in traversal order. The slice is shared; do
// not modify it.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}
