package domain

import (
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"
)

// Submission field names, as used in FieldErrors and on the wire.
const (
	FieldTitle                 = "title"
	FieldAudienceLevel         = "audience_level"
	FieldDescription           = "description"
	FieldAbstract              = "abstract"
	FieldAffiliation           = "affiliation"
	FieldAdditionalNotes       = "additional_notes"
	FieldFirstTimeAtConference = "first_time_at_conference"
	FieldRequests              = "requests"
	FieldGender                = "gender"
	FieldReferral              = "referral"
	FieldUnderRepresentedGroup = "under_represented_group"
	FieldAccessibilityNeeds    = "accessibility_needs"
	FieldRecordingRelease      = "recording_release"
	FieldPhoneNumber           = "phone_number"
	FieldGDPRGrant             = "gdpr_grant"
	FieldGDPRRevokeAwareness   = "gdpr_revoke_awareness"
	FieldGDPRDataExemption     = "gdpr_data_exemption"
	FieldTargetAudience        = "target_audience"
	FieldTutorialFormat        = "tutorial_format"
)

// Validation limits and messages.
const (
	MaxTitleLength              = 100
	MaxDescriptionLength        = 400
	MaxAffiliationLength        = 200
	MaxAccessibilityNeedsLength = 200

	MsgRequired          = "This field is required."
	MsgDescriptionLength = "description must be under 400 characters"
	MsgInvalidPhone      = "Enter a valid phone number."
)

// ConsentFields are the GDPR checkboxes every proposal must affirm.
var ConsentFields = []string{FieldGDPRGrant, FieldGDPRRevokeAwareness, FieldGDPRDataExemption}

var baseFields = []string{
	FieldTitle, FieldAudienceLevel, FieldDescription, FieldAbstract, FieldAffiliation,
	FieldAdditionalNotes, FieldFirstTimeAtConference, FieldRequests, FieldGender, FieldReferral,
	FieldUnderRepresentedGroup, FieldAccessibilityNeeds, FieldRecordingRelease, FieldPhoneNumber,
	FieldGDPRGrant, FieldGDPRRevokeAwareness, FieldGDPRDataExemption,
}

var tutorialFields = []string{
	FieldTitle, FieldAudienceLevel, FieldTargetAudience, FieldDescription, FieldTutorialFormat,
	FieldAbstract, FieldAffiliation, FieldAdditionalNotes, FieldFirstTimeAtConference, FieldRequests,
	FieldGender, FieldReferral, FieldUnderRepresentedGroup, FieldAccessibilityNeeds,
	FieldRecordingRelease, FieldPhoneNumber, FieldGDPRGrant, FieldGDPRRevokeAwareness,
	FieldGDPRDataExemption,
}

var baseRequired = []string{FieldTitle, FieldAudienceLevel, FieldDescription, FieldAbstract}

var audienceLevels = []string{AudienceNovice, AudienceIntermediate, AudienceExperienced}

// FieldErrors maps a field name to its human-readable validation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Fields returns the names of the fields with errors, sorted.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ProposalForm is the per-variant field set: which fields a variant shows and which it requires.
type ProposalForm struct {
	Variant  Variant
	Fields   []string
	Required []string
}

// FormFor returns the form for a variant. Talks and posters share the base field set;
// tutorials add target_audience and tutorial_format and require both.
func FormFor(v Variant) (ProposalForm, error) {
	switch v {
	case VariantTalk, VariantPoster:
		return ProposalForm{Variant: v, Fields: baseFields, Required: requiredFor(nil)}, nil
	case VariantTutorial:
		return ProposalForm{
			Variant:  v,
			Fields:   tutorialFields,
			Required: requiredFor([]string{FieldTargetAudience, FieldTutorialFormat}),
		}, nil
	}
	return ProposalForm{}, fmt.Errorf("%w: %q", ErrUnsupportedVariant, string(v))
}

func requiredFor(extra []string) []string {
	out := append([]string{}, baseRequired...)
	out = append(out, extra...)
	return append(out, ConsentFields...)
}

// IsRequired reports whether the form requires field.
func (f ProposalForm) IsRequired(field string) bool {
	return slices.Contains(f.Required, field)
}

// Validate checks a normalized submission and returns every failure it finds.
// An empty result means the submission is valid.
func (f ProposalForm) Validate(s *ProposalSubmission) FieldErrors {
	errs := FieldErrors{}
	text := map[string]string{
		FieldTitle:          s.Title,
		FieldAudienceLevel:  s.AudienceLevel,
		FieldDescription:    s.Description,
		FieldAbstract:       s.Abstract,
		FieldTargetAudience: s.TargetAudience,
		FieldTutorialFormat: s.TutorialFormat,
	}
	consent := map[string]*bool{
		FieldGDPRGrant:           s.GDPRGrant,
		FieldGDPRRevokeAwareness: s.GDPRRevokeAwareness,
		FieldGDPRDataExemption:   s.GDPRDataExemption,
	}
	for _, field := range f.Required {
		if b, ok := consent[field]; ok {
			if !isTrue(b) {
				errs.Add(field, MsgRequired)
			}
			continue
		}
		if text[field] == "" {
			errs.Add(field, MsgRequired)
		}
	}

	if utf8.RuneCountInString(s.Title) > MaxTitleLength {
		errs.Add(FieldTitle, maxLengthMsg(MaxTitleLength, s.Title))
	}
	if utf8.RuneCountInString(s.Description) > MaxDescriptionLength {
		errs.Add(FieldDescription, MsgDescriptionLength)
	}
	if utf8.RuneCountInString(s.Affiliation) > MaxAffiliationLength {
		errs.Add(FieldAffiliation, maxLengthMsg(MaxAffiliationLength, s.Affiliation))
	}
	if utf8.RuneCountInString(s.AccessibilityNeeds) > MaxAccessibilityNeedsLength {
		errs.Add(FieldAccessibilityNeeds, maxLengthMsg(MaxAccessibilityNeedsLength, s.AccessibilityNeeds))
	}
	if s.AudienceLevel != "" && !slices.Contains(audienceLevels, s.AudienceLevel) {
		errs.Add(FieldAudienceLevel, invalidChoiceMsg(s.AudienceLevel))
	}
	if s.UnderRepresentedGroup != "" && s.UnderRepresentedGroup != AnswerYes && s.UnderRepresentedGroup != AnswerNo {
		errs.Add(FieldUnderRepresentedGroup, invalidChoiceMsg(s.UnderRepresentedGroup))
	}
	return errs
}

func maxLengthMsg(limit int, value string) string {
	return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, utf8.RuneCountInString(value))
}

func invalidChoiceMsg(value string) string {
	return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", value)
}

// FieldText is the label and help text shown for one form field.
type FieldText struct {
	Label    string `json:"label" yaml:"label"`
	HelpText string `json:"help_text,omitempty" yaml:"help_text"`
}

// FormCatalog supplies per-variant labels and help text.
type FormCatalog interface {
	FieldText(v Variant, field string) FieldText
}
