package profile

// JobProfile is the structured summary of a job description.
type JobProfile struct {
	Title              string   `json:"title" mapstructure:"title"`
	Summary            string   `json:"summary" mapstructure:"summary"`
	RequiredSkills     []string `json:"required_skills" mapstructure:"required_skills"`
	RequiredExperience string   `json:"required_experience" mapstructure:"required_experience"`
	Responsibilities   []string `json:"responsibilities" mapstructure:"responsibilities"`
}

// CandidateProfile is the structured summary of a CV.
type CandidateProfile struct {
	Name           string           `json:"name" mapstructure:"name"`
	Education      []Education      `json:"education" mapstructure:"education"`
	WorkExperience []WorkExperience `json:"work_experience" mapstructure:"work_experience"`
	Skills         []string         `json:"skills" mapstructure:"skills"`
	Certifications []string         `json:"certifications" mapstructure:"certifications"`
}

type Education struct {
	Institution string `json:"institution" mapstructure:"institution"`
	Degree      string `json:"degree" mapstructure:"degree"`
	Field       string `json:"field" mapstructure:"field"`
	Years       string `json:"years" mapstructure:"years"`
}

type WorkExperience struct {
	Company     string `json:"company" mapstructure:"company"`
	Role        string `json:"role" mapstructure:"role"`
	Years       string `json:"years" mapstructure:"years"`
	Description string `json:"description" mapstructure:"description"`
}
