package ethproofs

// proverInfo holds the validated fields shared by clusters and single
// machines. Its fields are unexported so a built request cannot be altered.
type proverInfo struct {
	nickname      string
	description   *string
	zkvmVersionID uint64
	hardware      *string
	cycleType     *string
	proofType     *string
}

// proverWire is the JSON shape of proverInfo.
type proverWire struct {
	Nickname      string  `json:"nickname"`
	Description   *string `json:"description,omitempty"`
	ZkvmVersionID uint64  `json:"zkvm_version_id"`
	Hardware      *string `json:"hardware,omitempty"`
	CycleType     *string `json:"cycle_type,omitempty"`
	ProofType     *string `json:"proof_type,omitempty"`
}

func (p proverInfo) wire() proverWire {
	return proverWire{
		Nickname:      p.nickname,
		Description:   clonePtr(p.description),
		ZkvmVersionID: p.zkvmVersionID,
		Hardware:      clonePtr(p.hardware),
		CycleType:     clonePtr(p.cycleType),
		ProofType:     clonePtr(p.proofType),
	}
}

// Nickname is the display name, at most 50 characters
func (p proverInfo) Nickname() string { return p.nickname }

// Description returns the description and whether one was set
func (p proverInfo) Description() (string, bool) { return deref(p.description) }

// ZkvmVersionID is the ID of the zkVM version the prover runs
func (p proverInfo) ZkvmVersionID() uint64 { return p.zkvmVersionID }

// Hardware returns the free-form hardware description and whether one was set.
//
// Deprecated: the machine configuration supersedes it. It is still sent so
// the payload round-trips while the service accepts it.
func (p proverInfo) Hardware() (string, bool) { return deref(p.hardware) }

// CycleType returns the cycle type and whether one was set
func (p proverInfo) CycleType() (string, bool) { return deref(p.cycleType) }

// ProofType returns the proof system (e.g. Groth16) and whether one was set
func (p proverInfo) ProofType() (string, bool) { return deref(p.proofType) }

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// freeze copies the staged fields into a proverInfo. validateRequired must
// have passed.
func (p *prover) freeze() proverInfo {
	return proverInfo{
		nickname:      *p.nickname,
		description:   clonePtr(p.description),
		zkvmVersionID: *p.zkvmVersionID,
		hardware:      clonePtr(p.hardware),
		cycleType:     clonePtr(p.cycleType),
		proofType:     clonePtr(p.proofType),
	}
}
