// Package types holds the data model shared by every whole-body component:
// joint addressing, sensor/estimate/control-mode tags, the per-tick robot
// state snapshot and the kinematic tree description consumed by the
// rigid-body model.
package types

import "fmt"

// JointId addresses a joint by body part and position within that part's
// ordered joint list.
type JointId struct {
	BodyPart  string
	LocalIndex int
}

func (j JointId) String() string {
	return fmt.Sprintf("%s[%d]", j.BodyPart, j.LocalIndex)
}

// JointIdSet maps body parts to their ordered list of local indices and
// assigns each (bodyPart, localIndex) pair a dense, stable global index by
// concatenating body parts in insertion order. No duplicate pair may be
// inserted; global indices only change when the set itself is mutated.
type JointIdSet struct {
	order   []string
	members map[string][]int
	global  map[JointId]int
	total   int
}

// NewJointIdSet returns an empty set.
func NewJointIdSet() *JointIdSet {
	return &JointIdSet{
		members: make(map[string][]int),
		global:  make(map[JointId]int),
	}
}

// Add inserts a (bodyPart, localIndex) pair. It is a no-op if the pair is
// already present.
func (s *JointIdSet) Add(id JointId) {
	if s.Contains(id) {
		return
	}
	if _, ok := s.members[id.BodyPart]; !ok {
		s.order = append(s.order, id.BodyPart)
	}
	s.members[id.BodyPart] = append(s.members[id.BodyPart], id.LocalIndex)
	s.rebuildGlobal()
}

// Remove deletes a (bodyPart, localIndex) pair if present, renumbering the
// global index space but preserving relative order of everything else.
func (s *JointIdSet) Remove(id JointId) {
	locals, ok := s.members[id.BodyPart]
	if !ok {
		return
	}
	for i, li := range locals {
		if li == id.LocalIndex {
			s.members[id.BodyPart] = append(locals[:i], locals[i+1:]...)
			break
		}
	}
	if len(s.members[id.BodyPart]) == 0 {
		delete(s.members, id.BodyPart)
		for i, bp := range s.order {
			if bp == id.BodyPart {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.rebuildGlobal()
}

// Contains reports whether the pair is a member of the set.
func (s *JointIdSet) Contains(id JointId) bool {
	_, ok := s.global[id]
	return ok
}

// Size returns the total number of joints across all body parts.
func (s *JointIdSet) Size() int {
	return s.total
}

// LocalToGlobal converts a (bodyPart, localIndex) pair to its dense global
// index. ok is false if the pair is not a member.
func (s *JointIdSet) LocalToGlobal(id JointId) (global int, ok bool) {
	g, ok := s.global[id]
	return g, ok
}

// GlobalToLocal is the inverse of LocalToGlobal. ok is false if g is out of
// range.
func (s *JointIdSet) GlobalToLocal(g int) (id JointId, ok bool) {
	if g < 0 || g >= s.total {
		return JointId{}, false
	}
	running := 0
	for _, bp := range s.order {
		locals := s.members[bp]
		if g < running+len(locals) {
			return JointId{BodyPart: bp, LocalIndex: locals[g-running]}, true
		}
		running += len(locals)
	}
	return JointId{}, false
}

// BodyParts returns the ordered list of body part names currently holding
// at least one joint.
func (s *JointIdSet) BodyParts() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// LocalIndices returns the ordered local indices registered for bodyPart.
func (s *JointIdSet) LocalIndices(bodyPart string) []int {
	locals := s.members[bodyPart]
	out := make([]int, len(locals))
	copy(out, locals)
	return out
}

func (s *JointIdSet) rebuildGlobal() {
	s.global = make(map[JointId]int)
	g := 0
	for _, bp := range s.order {
		for _, li := range s.members[bp] {
			s.global[JointId{BodyPart: bp, LocalIndex: li}] = g
			g++
		}
	}
	s.total = g
}
