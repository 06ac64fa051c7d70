package model

type Color struct {
	BaseModel
	Name     string `json:"name"`
	HexCode  string `json:"hexCode"`
	IsActive bool   `json:"isActive"`
}

type Tag struct {
	BaseModel
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type FrameShape struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type FrameMaterial struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}
