package interaction

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an update targets a missing log id
var ErrNotFound = errors.New("interaction log not found")

// Store persists interaction logs and their child collections
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save inserts rec when its ID is zero, otherwise updates the existing row.
// Updates replace the child collections wholesale (delete then insert), the
// same way the log was written before partial edits existed.
func (s *Store) Save(rec *InteractionLog) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if rec.ID != 0 {
			var existing InteractionLog
			if err := tx.First(&existing, rec.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrNotFound, rec.ID)
				}
				return err
			}
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"hcp_name":          rec.HCPName,
				"interaction_type":  rec.InteractionType,
				"interaction_date":  rec.InteractionDate,
				"interaction_time":  rec.InteractionTime,
				"attendees":         rec.Attendees,
				"topics_discussed":  rec.TopicsDiscussed,
				"sentiment":         rec.Sentiment,
				"outcomes":          rec.Outcomes,
				"follow_up_actions": rec.FollowUpActions,
				"chat_session_id":   rec.ChatSessionID,
				"snapshot":          rec.Snapshot,
			}).Error; err != nil {
				return err
			}
			for _, model := range []interface{}{&MaterialShared{}, &SampleDistributed{}, &ProductDiscussed{}} {
				if err := tx.Where("interaction_log_id = ?", rec.ID).Delete(model).Error; err != nil {
					return err
				}
			}
		} else {
			createRec := *rec
			createRec.MaterialsShared = nil
			createRec.SamplesDistributed = nil
			createRec.ProductsDiscussed = nil
			if err := tx.Create(&createRec).Error; err != nil {
				return err
			}
			rec.ID = createRec.ID
		}

		for i := range rec.MaterialsShared {
			rec.MaterialsShared[i].ID = 0
			rec.MaterialsShared[i].InteractionLogID = rec.ID
		}
		for i := range rec.SamplesDistributed {
			rec.SamplesDistributed[i].ID = 0
			rec.SamplesDistributed[i].InteractionLogID = rec.ID
		}
		for i := range rec.ProductsDiscussed {
			rec.ProductsDiscussed[i].ID = 0
			rec.ProductsDiscussed[i].InteractionLogID = rec.ID
		}
		if len(rec.MaterialsShared) > 0 {
			if err := tx.Create(&rec.MaterialsShared).Error; err != nil {
				return err
			}
		}
		if len(rec.SamplesDistributed) > 0 {
			if err := tx.Create(&rec.SamplesDistributed).Error; err != nil {
				return err
			}
		}
		if len(rec.ProductsDiscussed) > 0 {
			if err := tx.Create(&rec.ProductsDiscussed).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads a log with its child collections
func (s *Store) Get(id uint) (*InteractionLog, error) {
	var rec InteractionLog
	err := s.db.
		Preload("MaterialsShared").
		Preload("SamplesDistributed").
		Preload("ProductsDiscussed").
		First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &rec, nil
}

// List returns all logs, newest first, without child collections
func (s *Store) List() ([]InteractionLog, error) {
	var recs []InteractionLog
	if err := s.db.Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
