package taxonomy

import "strings"

// Category groups skills for scoring purposes.
type Category string

const (
	CategoryProgrammingLanguages Category = "programming_languages"
	CategoryWebTechnologies      Category = "web_technologies"
	CategoryDatabases            Category = "databases"
	CategoryCloudPlatforms       Category = "cloud_platforms"
	CategoryDataScience          Category = "data_science"
	CategoryMobileDevelopment    Category = "mobile_development"
	CategoryDevOps               Category = "devops"
	CategoryProjectManagement    Category = "project_management"
)

// Taxonomy is the process-wide skill vocabulary and relationship graph.
// Instances are immutable after construction so a single one can be shared
// across the extractor and the matching engine.
type Taxonomy struct {
	categories map[Category][]string
	byLower    map[string]Category
	ordered    []string
	related    map[string][]string
}

// New builds a taxonomy from explicit category and relationship tables.
// Primarily useful for tests; production code uses Default.
func New(categories map[Category][]string, related map[string][]string) *Taxonomy {
	t := &Taxonomy{
		categories: categories,
		byLower:    make(map[string]Category),
		related:    make(map[string][]string),
	}

	// Fixed category order keeps AllSkills deterministic.
	order := []Category{
		CategoryProgrammingLanguages,
		CategoryWebTechnologies,
		CategoryDatabases,
		CategoryCloudPlatforms,
		CategoryDataScience,
		CategoryMobileDevelopment,
		CategoryDevOps,
		CategoryProjectManagement,
	}
	for _, cat := range order {
		for _, skill := range categories[cat] {
			lower := strings.ToLower(skill)
			if _, seen := t.byLower[lower]; seen {
				continue // first category wins for skills listed twice (e.g. Docker)
			}
			t.byLower[lower] = cat
			t.ordered = append(t.ordered, skill)
		}
	}

	for skill, rel := range related {
		t.related[strings.ToLower(skill)] = rel
	}

	return t
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return New(defaultCategories, defaultRelationships)
}

// AllSkills returns the full vocabulary in stable category order.
func (t *Taxonomy) AllSkills() []string {
	return t.ordered
}

// CategoryOf looks up a skill's category, case-insensitively.
func (t *Taxonomy) CategoryOf(skill string) (Category, bool) {
	cat, ok := t.byLower[strings.ToLower(skill)]
	return cat, ok
}

// Weight returns the technical-score weight of a skill based on its category.
func (t *Taxonomy) Weight(skill string) float64 {
	cat, ok := t.CategoryOf(skill)
	if !ok {
		return 1.0
	}
	switch cat {
	case CategoryProgrammingLanguages, CategoryCloudPlatforms, CategoryDataScience:
		return 2.0
	case CategoryWebTechnologies, CategoryDatabases:
		return 1.5
	default:
		return 1.0
	}
}

// Related returns the skills connected to the given one in the relationship
// graph, or nil if the skill has no outgoing edges.
func (t *Taxonomy) Related(skill string) []string {
	return t.related[strings.ToLower(skill)]
}

// AreRelated reports whether b appears in a's related set or a in b's,
// case-insensitively. The graph is directed but matching checks both ways.
func (t *Taxonomy) AreRelated(a, b string) bool {
	bLower := strings.ToLower(b)
	for _, rel := range t.Related(a) {
		if strings.ToLower(rel) == bLower {
			return true
		}
	}
	aLower := strings.ToLower(a)
	for _, rel := range t.Related(b) {
		if strings.ToLower(rel) == aLower {
			return true
		}
	}
	return false
}

var defaultCategories = map[Category][]string{
	CategoryProgrammingLanguages: {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "PHP",
		"Ruby", "Go", "Rust", "Swift", "Kotlin", "Scala", "R", "MATLAB",
	},
	CategoryWebTechnologies: {
		"React", "Angular", "Vue.js", "Node.js", "Express", "Django",
		"Flask", "Spring", "Laravel", "HTML", "CSS", "Bootstrap", "Tailwind",
	},
	CategoryDatabases: {
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "SQLite", "Oracle",
		"SQL Server", "Cassandra", "DynamoDB", "Elasticsearch",
	},
	CategoryCloudPlatforms: {
		"AWS", "Azure", "Google Cloud", "GCP", "DigitalOcean", "Heroku",
		"Vercel", "Netlify", "Docker", "Kubernetes", "Terraform",
	},
	CategoryDataScience: {
		"Machine Learning", "Deep Learning", "Data Science", "Pandas",
		"NumPy", "Scikit-learn", "TensorFlow", "PyTorch", "Tableau", "Power BI",
	},
	CategoryMobileDevelopment: {
		"iOS", "Android", "React Native", "Flutter", "Xamarin", "Ionic",
	},
	CategoryDevOps: {
		"CI/CD", "Jenkins", "GitLab CI", "GitHub Actions", "Docker",
		"Kubernetes", "Ansible", "Terraform", "Monitoring", "Logging",
	},
	CategoryProjectManagement: {
		"Agile", "Scrum", "Kanban", "JIRA", "Confluence", "Trello",
		"Asana", "Project Management", "Team Leadership",
	},
}

// defaultRelationships encodes which skills imply familiarity with others,
// e.g. a React candidate is assumed to know JavaScript.
var defaultRelationships = map[string][]string{
	"React":            {"JavaScript", "JSX", "Redux", "HTML", "CSS"},
	"Angular":          {"TypeScript", "JavaScript", "HTML", "CSS", "RxJS"},
	"Vue.js":           {"JavaScript", "HTML", "CSS", "Vuex"},
	"Python":           {"Django", "Flask", "FastAPI", "NumPy", "Pandas"},
	"Java":             {"Spring", "Hibernate", "Maven", "Gradle"},
	"Node.js":          {"JavaScript", "Express", "npm", "REST APIs"},
	"AWS":              {"Cloud Computing", "EC2", "S3", "Lambda", "RDS"},
	"Docker":           {"Containerization", "Kubernetes", "DevOps"},
	"Machine Learning": {"Python", "TensorFlow", "PyTorch", "Scikit-learn"},
	"Data Science":     {"Python", "R", "Pandas", "NumPy", "Statistics"},
}
