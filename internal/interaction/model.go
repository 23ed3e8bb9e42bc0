package interaction

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InteractionLog is one finalized HCP interaction record. Date and time stay
// strings in the formats the agent extracts (YYYY-MM-DD, HH:MM 24h).
type InteractionLog struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	HCPName         string         `json:"hcpName"`
	InteractionType string         `json:"interactionType"`
	InteractionDate string         `json:"date"`
	InteractionTime string         `json:"time"`
	Attendees       string         `json:"attendees"`
	TopicsDiscussed string         `json:"topicsDiscussed"`
	Sentiment       string         `json:"sentiment"`
	Outcomes        string         `json:"outcomes"`
	FollowUpActions string         `json:"followUpActions"`
	ChatSessionID   string         `json:"chatSessionId"`
	Snapshot        datatypes.JSON `json:"snapshot,omitempty"` // raw working-record snapshot at save time
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	MaterialsShared    []MaterialShared    `json:"materialsShared" gorm:"foreignKey:InteractionLogID"`
	SamplesDistributed []SampleDistributed `json:"samplesDistributed" gorm:"foreignKey:InteractionLogID"`
	ProductsDiscussed  []ProductDiscussed  `json:"productsDiscussed" gorm:"foreignKey:InteractionLogID"`
}

type MaterialShared struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	InteractionLogID uint   `json:"interaction_log_id" gorm:"index"`
	Name             string `json:"name"`
}

type SampleDistributed struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	InteractionLogID uint   `json:"interaction_log_id" gorm:"index"`
	Name             string `json:"name"`
}

type ProductDiscussed struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	InteractionLogID uint   `json:"interaction_log_id" gorm:"index"`
	Name             string `json:"name"`
}
