package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Curriculum tree: formation type > knowledge area > sub-area > subject.

type FormationTypeModel struct {
	FormationTypeID   uuid.UUID `gorm:"type:uuid;primaryKey;column:formation_type_id" json:"id"`
	FormationTypeName string    `gorm:"type:varchar(150);not null;column:formation_type_name" json:"name"`
}

func (FormationTypeModel) TableName() string { return "formation_types" }

func (m *FormationTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FormationTypeID == uuid.Nil {
		m.FormationTypeID = uuid.New()
	}
	return nil
}

type KnowledgeAreaModel struct {
	KnowledgeAreaID              uuid.UUID `gorm:"type:uuid;primaryKey;column:knowledge_area_id" json:"id"`
	KnowledgeAreaName            string    `gorm:"type:varchar(150);not null;column:knowledge_area_name" json:"name"`
	KnowledgeAreaFormationTypeID uuid.UUID `gorm:"type:uuid;not null;index;column:knowledge_area_formation_type_id" json:"formationTypeId"`
}

func (KnowledgeAreaModel) TableName() string { return "knowledge_areas" }

func (m *KnowledgeAreaModel) BeforeCreate(tx *gorm.DB) error {
	if m.KnowledgeAreaID == uuid.Nil {
		m.KnowledgeAreaID = uuid.New()
	}
	return nil
}

type SubAreaModel struct {
	SubAreaID              uuid.UUID `gorm:"type:uuid;primaryKey;column:sub_area_id" json:"id"`
	SubAreaName            string    `gorm:"type:varchar(150);not null;column:sub_area_name" json:"name"`
	SubAreaKnowledgeAreaID uuid.UUID `gorm:"type:uuid;not null;index;column:sub_area_knowledge_area_id" json:"knowledgeAreaId"`
}

func (SubAreaModel) TableName() string { return "sub_areas" }

func (m *SubAreaModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubAreaID == uuid.Nil {
		m.SubAreaID = uuid.New()
	}
	return nil
}
