package core

type (
	// CV is the public portfolio document served by GET /api/cv.
	CV struct {
		Profile        Profile          `json:"profile"`
		Summary        string           `json:"summary"`
		Languages      []Language       `json:"languages"`
		Certificates   []Certificate    `json:"certificates"`
		DrivingLicense *DrivingLicense  `json:"drivingLicense,omitempty"`
		Interests      []string         `json:"interests"`
		Education      []Education      `json:"education"`
		ITCompetences  *ITCompetences   `json:"itCompetences,omitempty"`
		WorkExperience []WorkExperience `json:"workExperience"`
		Projects       []Project        `json:"projects"`
	}

	Profile struct {
		FullName       string       `json:"fullName"`
		Title          string       `json:"title"`
		Location       string       `json:"location"`
		Phone          string       `json:"phone"`
		Email          string       `json:"email"`
		GithubUsername string       `json:"githubUsername"`
		AvatarURL      string       `json:"avatarUrl,omitempty"`
		Links          ProfileLinks `json:"links,omitempty"`
	}

	ProfileLinks struct {
		Github   string `json:"github,omitempty"`
		LinkedIn string `json:"linkedin,omitempty"`
	}

	Language struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	}

	Certificate struct {
		Name     string `json:"name"`
		Issuer   string `json:"issuer"`
		Status   string `json:"status"`
		Period   string `json:"period,omitempty"`
		LogoURL  string `json:"logoUrl,omitempty"`
		ImageURL string `json:"imageUrl,omitempty"`
	}

	DrivingLicense struct {
		TypeB     bool `json:"typeB,omitempty"`
		TruckCard bool `json:"truckCard,omitempty"`
	}

	Education struct {
		Program    string   `json:"program"`
		School     string   `json:"school"`
		Location   string   `json:"location"`
		Period     string   `json:"period"`
		Highlights []string `json:"highlights"`
	}

	ITCompetences struct {
		LanguagesAndFrameworks []string `json:"languagesAndFrameworks"`
		Databases              []string `json:"databases"`
		ToolsAndPlatforms      []string `json:"toolsAndPlatforms"`
		AIChatbots             []string `json:"aiChatbots"`
	}

	WorkExperience struct {
		Title    string   `json:"title"`
		Company  string   `json:"company"`
		Location string   `json:"location"`
		Period   string   `json:"period"`
		Bullets  []string `json:"bullets"`
	}

	Project struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
)
