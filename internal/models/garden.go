package models

// Crop is a plant the user is actively growing.
type Crop struct {
	ID            int64  `json:"id" bson:"id"`
	Name          string `json:"name" bson:"name"`
	Image         string `json:"image" bson:"image"`
	Stage         string `json:"stage" bson:"stage"`
	Progress      int    `json:"progress" bson:"progress"`
	NextAction    string `json:"nextAction" bson:"nextAction"`
	PlantedDate   string `json:"plantedDate,omitempty" bson:"plantedDate,omitempty"`
	Health        *int   `json:"health,omitempty" bson:"health,omitempty"`
	WaterSchedule string `json:"waterSchedule,omitempty" bson:"waterSchedule,omitempty"`
	Sunlight      string `json:"sunlight,omitempty" bson:"sunlight,omitempty"`
}

// CropPatch carries the fields of a partial crop update. Nil fields are left alone.
type CropPatch struct {
	Name          *string `json:"name,omitempty"`
	Image         *string `json:"image,omitempty"`
	Stage         *string `json:"stage,omitempty"`
	Progress      *int    `json:"progress,omitempty"`
	NextAction    *string `json:"nextAction,omitempty"`
	PlantedDate   *string `json:"plantedDate,omitempty"`
	Health        *int    `json:"health,omitempty"`
	WaterSchedule *string `json:"waterSchedule,omitempty"`
	Sunlight      *string `json:"sunlight,omitempty"`
}

// Apply merges the patch into c and returns the result.
func (p CropPatch) Apply(c Crop) Crop {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.Progress != nil {
		c.Progress = *p.Progress
	}
	if p.NextAction != nil {
		c.NextAction = *p.NextAction
	}
	if p.PlantedDate != nil {
		c.PlantedDate = *p.PlantedDate
	}
	if p.Health != nil {
		h := *p.Health
		c.Health = &h
	}
	if p.WaterSchedule != nil {
		c.WaterSchedule = *p.WaterSchedule
	}
	if p.Sunlight != nil {
		c.Sunlight = *p.Sunlight
	}
	return c
}

// Plant is a grow guide entry.
type Plant struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Soil          string `json:"soil"`
	Water         string `json:"water"`
	Sunlight      string `json:"sunlight"`
	Season        string `json:"season"`
	Category      string `json:"category"`   // vegetable, herb, fruit, flower, succulent
	Difficulty    string `json:"difficulty"` // Easy, Medium, Hard
	DaysToHarvest int    `json:"daysToHarvest,omitempty"`
	ContainerSize string `json:"containerSize"`
}
