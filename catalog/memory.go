package catalog

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory Store, built once at startup from loaded
// reference tables and never mutated afterward. Reads are guarded by an
// RWMutex so a Store can be safely shared across validation workers even
// while a loader is still populating it.
type MemoryStore struct {
	mu sync.RWMutex

	terms map[string]Term

	// parents[hierarchy][code] = parentCode
	parents map[string]map[string]string

	// members[hierarchy] is the set of codes belonging to that hierarchy.
	members map[string]map[string]bool

	// forbidden[rootGroupCode] holds the processes forbidden for that root
	// group and (via the hierarchy resolver) its descendants.
	forbidden map[string][]ForbiddenProcess

	// ordinals[processCode] = ordinal value.
	ordinals map[string]decimal.Decimal

	ruleMessages map[string]RuleMessage

	physicalStates     map[string]bool
	dehydrationProcess map[string]bool
	rehydrationProcess map[string]bool
}

// NewMemoryStore creates an empty MemoryStore ready for loading.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		terms:              make(map[string]Term),
		parents:            make(map[string]map[string]string),
		members:            make(map[string]map[string]bool),
		forbidden:          make(map[string][]ForbiddenProcess),
		ordinals:           make(map[string]decimal.Decimal),
		ruleMessages:       make(map[string]RuleMessage),
		physicalStates:     make(map[string]bool),
		dehydrationProcess: make(map[string]bool),
		rehydrationProcess: make(map[string]bool),
	}
}

// PutTerm inserts or replaces a term.
func (s *MemoryStore) PutTerm(t Term) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[t.Code] = t
}

// PutParent records a direct parent link for a term in a hierarchy, and
// marks both codes as members of that hierarchy.
func (s *MemoryStore) PutParent(hierarchy, code, parentCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.parents[hierarchy] == nil {
		s.parents[hierarchy] = make(map[string]string)
	}
	s.parents[hierarchy][code] = parentCode
	s.markMemberLocked(hierarchy, code)
	s.markMemberLocked(hierarchy, parentCode)
}

// PutMember marks code as a member of hierarchy without requiring a known
// parent (used for root terms).
func (s *MemoryStore) PutMember(hierarchy, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markMemberLocked(hierarchy, code)
}

func (s *MemoryStore) markMemberLocked(hierarchy, code string) {
	if s.members[hierarchy] == nil {
		s.members[hierarchy] = make(map[string]bool)
	}
	s.members[hierarchy][code] = true
}

// PutForbiddenProcess indexes one forbidden-process table row by its root
// group code.
func (s *MemoryStore) PutForbiddenProcess(fp ForbiddenProcess) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forbidden[fp.RootGroupCode] = append(s.forbidden[fp.RootGroupCode], fp)
	if !fp.Ordinal.IsZero() {
		s.ordinals[fp.ProcessCode] = fp.Ordinal
	}
}

// PutOrdinal records a process ordinal independent of the forbidden-process
// table (a "parallel lookup", per spec §4.1).
func (s *MemoryStore) PutOrdinal(processCode string, ordinal decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordinals[processCode] = ordinal
}

// PutRuleMessage records a catalogue override for a rule's message/severity.
func (s *MemoryStore) PutRuleMessage(rm RuleMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ruleMessages[rm.ID] = rm
}

// SetPhysicalStateSet configures the BR13 derivative-creating physical
// states set.
func (s *MemoryStore) SetPhysicalStateSet(codes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.physicalStates = toSet(codes)
}

// SetDehydrationProcessSet configures the BR28 dehydration-indicating
// implicit process set.
func (s *MemoryStore) SetDehydrationProcessSet(codes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dehydrationProcess = toSet(codes)
}

// SetRehydrationProcessSet configures the BR28 reconstitution/dilution
// process set.
func (s *MemoryStore) SetRehydrationProcessSet(codes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rehydrationProcess = toSet(codes)
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

// --- Store interface ---

func (s *MemoryStore) LookupTerm(code string) (Term, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.terms[code]
	return t, ok
}

func (s *MemoryStore) ImplicitFacets(term Term) []FacetRef {
	return ParseImplicitFacets(term.ImplicitFacets)
}

func (s *MemoryStore) Parent(code, hierarchy string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parent, ok := s.parents[hierarchy][code]
	if !ok || parent == "" {
		return "", false
	}
	return parent, true
}

func (s *MemoryStore) IsMember(code, hierarchy string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members[hierarchy][code]
}

func (s *MemoryStore) ForbiddenProcessesFor(code string, ancestorsInclusive []string) map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool)
	add := func(rootCode string) {
		for _, fp := range s.forbidden[rootCode] {
			out[fp.ProcessCode] = true
		}
	}
	add(code)
	for _, a := range ancestorsInclusive {
		add(a)
	}
	return out
}

func (s *MemoryStore) ProcessOrdinal(processCode string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.ordinals[processCode]
	return o, ok
}

func (s *MemoryStore) RuleMessage(id string) (RuleMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rm, ok := s.ruleMessages[id]
	return rm, ok
}

func (s *MemoryStore) PhysicalStateSet() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.physicalStates
}

func (s *MemoryStore) DehydrationProcessSet() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dehydrationProcess
}

func (s *MemoryStore) RehydrationProcessSet() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rehydrationProcess
}
