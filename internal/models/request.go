package models

// PageType selects the content template and the minimum word count enforced downstream.
type PageType string

const (
	PageTypeCornerstone PageType = "cornerstone"
	PageTypeBlog        PageType = "blog"
)

// FunnelStage is the marketing-intent classification that informs prompt tone.
type FunnelStage string

const (
	FunnelTOFU FunnelStage = "TOFU"
	FunnelMOFU FunnelStage = "MOFU"
	FunnelBOFU FunnelStage = "BOFU"
)

// ContentRequest is the ephemeral input to a single generation call. It is never persisted.
type ContentRequest struct {
	PrimaryKeyword    string      `json:"primary_keyword" validate:"required"`
	SecondaryKeywords []string    `json:"secondary_keywords,omitempty"`
	PageType          PageType    `json:"page_type" validate:"required,oneof=cornerstone blog"`
	Region            string      `json:"region,omitempty"`
	FunnelStage       FunnelStage `json:"funnel_stage,omitempty" validate:"omitempty,oneof=TOFU MOFU BOFU"`
	CTALabel          string      `json:"cta_label,omitempty"`
	Locale            string      `json:"locale,omitempty"`
	ContentType       ContentType `json:"content_type,omitempty" validate:"omitempty,oneof=article news"`
	Category          string      `json:"category,omitempty"`
	Author            string      `json:"author,omitempty"`
}
