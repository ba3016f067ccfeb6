package roster

type ProfileResponse struct {
	Name         string   `json:"name"`
	Position     string   `json:"position"`
	Contact      string   `json:"contact"`
	Email        string   `json:"email"`
	MedicalExam  string   `json:"medical_exam"`
	Skills       SkillSet `json:"skills"`
	ExamDaysLeft *int     `json:"exam_days_left"`
	ExamSoon     bool     `json:"exam_soon"`
}

type ProfileDetailResponse struct {
	Profile ProfileResponse `json:"profile"`
	Catalog []string        `json:"catalog"`
}

type AddEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

type EditEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

type TransferRequest struct {
	TargetGroup string `json:"target_group" binding:"required"`
}

type UpdateProfileRequest struct {
	Name        string   `json:"name" binding:"required"`
	Position    string   `json:"position"`
	Contact     string   `json:"contact"`
	Email       string   `json:"email"`
	MedicalExam string   `json:"medical_exam"`
	Skills      []string `json:"skills"`
	NewSkill    string   `json:"new_skill"`
}

type SkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type ListQuery struct {
	Q string `form:"q"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}
