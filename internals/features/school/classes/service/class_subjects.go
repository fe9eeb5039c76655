package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sei_backend/internals/features/school/classes/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	helper "sei_backend/internals/helpers"
)

// MissingSubjects returns the ids in want that have no subject row.
func MissingSubjects(ctx context.Context, db *gorm.DB, want []uuid.UUID) ([]uuid.UUID, error) {
	want = helper.UniqueUUIDs(want)
	if len(want) == 0 {
		return nil, nil
	}
	var found []uuid.UUID
	if err := db.WithContext(ctx).Model(&subjectModel.SubjectModel{}).
		Scopes(helper.WhereIDIn("subject_id", want)).
		Pluck("subject_id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ReplaceSubjects makes the class's links exactly subjectIDs: links outside
// the set are pruned, new ones inserted. Run it inside the caller's tx.
func ReplaceSubjects(tx *gorm.DB, classID uuid.UUID, subjectIDs []uuid.UUID) error {
	subjectIDs = helper.UniqueUUIDs(subjectIDs)

	if err := tx.Where("class_subject_class_id = ?", classID).
		Scopes(helper.WhereIDNotIn("class_subject_subject_id", subjectIDs)).
		Delete(&model.ClassSubjectModel{}).Error; err != nil {
		return err
	}
	if len(subjectIDs) == 0 {
		return nil
	}

	links := make([]model.ClassSubjectModel, 0, len(subjectIDs))
	for _, sid := range subjectIDs {
		links = append(links, model.ClassSubjectModel{ClassSubjectClassID: classID, ClassSubjectSubjectID: sid})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// SubjectIDsByClass loads the links of the given classes. Every requested
// class gets a non-nil slice.
func SubjectIDsByClass(ctx context.Context, db *gorm.DB, classIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(classIDs))
	for _, id := range classIDs {
		out[id] = []uuid.UUID{}
	}
	if len(classIDs) == 0 {
		return out, nil
	}

	var links []model.ClassSubjectModel
	if err := db.WithContext(ctx).
		Scopes(helper.WhereIDIn("class_subject_class_id", classIDs)).
		Order("class_subject_subject_id").
		Find(&links).Error; err != nil {
		return nil, err
	}
	for _, l := range links {
		out[l.ClassSubjectClassID] = append(out[l.ClassSubjectClassID], l.ClassSubjectSubjectID)
	}
	return out, nil
}
