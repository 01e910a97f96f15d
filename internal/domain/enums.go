package domain

// ExperienceLevel is the writer's self-declared proficiency.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

func (l ExperienceLevel) String() string { return string(l) }

func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceProfessional:
		return true
	}
	return false
}

// Tone is the feedback tone the writer prefers.
type Tone string

const (
	ToneSupportive Tone = "supportive"
	ToneBalanced   Tone = "balanced"
	ToneDirect     Tone = "direct"
	ToneStrict     Tone = "strict"
)

func (t Tone) String() string { return string(t) }

func (t Tone) IsValid() bool {
	switch t {
	case ToneSupportive, ToneBalanced, ToneDirect, ToneStrict:
		return true
	}
	return false
}

// DocumentStatus tracks whether feedback has been applied to a document.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusAnalyzed DocumentStatus = "analyzed"
)

func (s DocumentStatus) String() string { return string(s) }

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusAnalyzed:
		return true
	}
	return false
}

// Severity drives the three-tier color coding of annotations.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	}
	return false
}
