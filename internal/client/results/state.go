package results

import "github.com/dmitrijs2005/casekeeper/internal/client/models"

// State holds both result lists of one patient case.
type State struct {
	Clinical     Set `json:"clinical"`
	Paraclinical Set `json:"paraclinical"`
}

// LoadCase builds the State from a fetched case.
func LoadCase(pc models.PatientCase) State {
	return State{
		Clinical:     Load(pc.ClinicalExResults),
		Paraclinical: Load(pc.ParaclinicalExResults),
	}
}

// Get returns the Set of the given kind.
func (st State) Get(k Kind) (Set, error) {
	switch k {
	case Clinical:
		return st.Clinical, nil
	case Paraclinical:
		return st.Paraclinical, nil
	}
	return nil, ErrUnknownKind
}

// With returns a copy of st with the Set of kind k replaced.
func (st State) With(k Kind, s Set) (State, error) {
	switch k {
	case Clinical:
		st.Clinical = s
	case Paraclinical:
		st.Paraclinical = s
	default:
		return st, ErrUnknownKind
	}
	return st, nil
}

// Payload builds the submission body for both kinds.
func (st State) Payload() Payload {
	return BuildPayload(st.Clinical, st.Paraclinical)
}
