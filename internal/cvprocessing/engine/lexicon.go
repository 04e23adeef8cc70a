package engine

import (
	"regexp"
	"strings"
)

// wordPattern quotes a token and adds word boundaries only on edges
// that are word characters. Tokens like "c++", "c#" and ".net" would
// never match with a plain \b on both sides.
func wordPattern(token string) string {
	quoted := regexp.QuoteMeta(token)
	pattern := quoted
	if isWordChar(rune(token[0])) {
		pattern = `\b` + pattern
	}
	if isWordChar(rune(token[len(token)-1])) {
		pattern = pattern + `\b`
	}
	return pattern
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// skillLexicon lists the known skills with their canonical casing.
// Matching is case-insensitive against the document; the canonical
// name is what ends up in the profile.
var skillLexicon = []string{
	// Languages and core technologies
	"python", "java", "javascript", "typescript", "c++", "c#", "golang",
	"php", "ruby", "swift", "kotlin", "scala", "rust", "perl", "matlab",
	"r", "sql", "html", "css", "sass", "bash", "powershell", ".net",
	"objective-c",
	// Frameworks and platforms
	"react", "angular", "vue", "node.js", "express", "django", "flask",
	"spring", "laravel", "symfony", "rails", "next.js", "nuxt",
	"flutter", "react native", "graphql", "rest api", "microservices",
	"machine learning", "deep learning", "data science", "nlp",
	"computer vision", "tensorflow", "pytorch", "pandas", "numpy",
	"scikit-learn", "spark", "hadoop", "kafka", "blockchain", "devops",
	"ci/cd", "agile", "scrum", "kanban", "tdd", "oop", "etl",
	"data analysis", "cybersecurity", "networking", "linux", "unix",
	// Databases, infra and tools
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch",
	"oracle", "sqlite", "cassandra", "rabbitmq", "docker", "kubernetes",
	"terraform", "ansible", "jenkins", "gitlab", "github", "git", "svn",
	"jira", "confluence", "trello", "slack", "aws", "azure", "gcp",
	"google cloud", "heroku", "nginx", "apache", "maven", "gradle",
	"webpack", "babel", "postman", "swagger", "figma", "photoshop",
	"illustrator", "sketch", "excel", "power bi", "tableau", "sap",
	"salesforce", "vs code", "intellij", "eclipse", "android studio",
	"xcode", "visual studio", "grafana", "prometheus", "splunk",
	// Soft skills, English and French forms
	"leadership", "communication", "teamwork", "problem solving",
	"critical thinking", "time management", "adaptability",
	"creativity", "collaboration", "negotiation", "public speaking",
	"mentoring", "project management", "team management",
	"travail d'équipe", "esprit d'équipe", "gestion de projet",
	"gestion d'équipe", "résolution de problèmes", "autonomie",
	"rigueur", "créativité", "prise de parole", "esprit d'analyse",
}

// Category keyword families, each tested independently against a
// matched skill name. A skill lands in every category whose family
// matches, so "mysql" is both technical (sql) and a tool (mysql);
// cross-category hits are kept, not deduplicated. A skill matching no
// family counts as technical.
var (
	technicalSkillRe = regexp.MustCompile(`(?i)python|java|script|c\+\+|c#|golang|php|ruby|swift|kotlin|scala|rust|perl|matlab|sql|html|css|sass|bash|powershell|\.net|objective|react|angular|vue|node|express|django|flask|spring|laravel|symfony|rails|nuxt|flutter|graphql|api|micro|machine|deep|data|nlp|vision|tensor|torch|pandas|numpy|scikit|spark|hadoop|kafka|blockchain|devops|ci/cd|agile|scrum|kanban|tdd|oop|etl|cyber|network|linux|unix`)
	softSkillRe      = regexp.MustCompile(`(?i)leadership|communication|team|équipe|problem|problème|critical|time management|adapt|creativ|créativ|collab|negoti|speaking|parole|mentor|management|gestion|autonomie|rigueur|analyse`)
	toolSkillRe      = regexp.MustCompile(`(?i)mysql|postgres|mongo|redis|elastic|oracle|sqlite|cassandra|rabbit|docker|kubernetes|terraform|ansible|jenkins|git|svn|jira|confluence|trello|slack|aws|azure|gcp|cloud|heroku|nginx|apache|maven|gradle|webpack|babel|postman|swagger|figma|photoshop|illustrator|sketch|excel|power bi|tableau|sap|salesforce|vs code|intellij|eclipse|studio|xcode|grafana|prometheus|splunk`)
)

// Role keywords used to recognize position titles, shared by the
// personal-info and experience extractors.
var roleKeywords = []string{
	"engineer", "developer", "manager", "director", "consultant",
	"analyst", "architect", "designer", "specialist", "administrator",
	"technician", "scientist", "researcher", "intern", "lead",
	"officer", "coordinator", "president", "founder", "head",
	"ingénieur", "développeur", "développeuse", "chef", "directeur",
	"directrice", "consultant", "consultante", "analyste", "architecte",
	"technicien", "technicienne", "chercheur", "stagiaire",
	"responsable", "chargé", "chargée", "gestionnaire", "concepteur",
}

var roleKeywordRe = regexp.MustCompile(`(?i)\b(` + strings.Join(roleKeywords, "|") + `)\b`)

// Degree and institution keywords split education blocks.
var degreeKeywords = []string{
	"bachelor", "master", "phd", `ph\.d`, "doctorate", "mba", "bsc",
	"msc", "diploma", "associate", "licence", "maîtrise", "doctorat",
	"ingénieur", "baccalauréat", "bts", "dut", "deug", "dess", "dea",
	"diplôme", "certificat", "degree",
}

var institutionKeywords = []string{
	"university", "college", "school", "institute", "academy",
	"polytechnic", "université", "école", "institut", "académie",
	"faculté", "lycée", "conservatoire", "polytechnique", "sorbonne",
}

var (
	degreeKeywordRe      = regexp.MustCompile(`(?i)\b(` + strings.Join(degreeKeywords, "|") + `)\b`)
	institutionKeywordRe = regexp.MustCompile(`(?i)\b(` + strings.Join(institutionKeywords, "|") + `)\b`)
)

// spokenLanguages maps detected forms (French and English) to the
// canonical lowercase English name emitted in profiles.
var spokenLanguages = []struct {
	forms     []string
	canonical string
}{
	{[]string{"français", "francais", "french"}, "french"},
	{[]string{"anglais", "english"}, "english"},
	{[]string{"espagnol", "spanish"}, "spanish"},
	{[]string{"allemand", "german"}, "german"},
	{[]string{"italien", "italian"}, "italian"},
	{[]string{"portugais", "portuguese"}, "portuguese"},
	{[]string{"arabe", "arabic"}, "arabic"},
	{[]string{"mandarin", "chinois", "chinese"}, "mandarin"},
	{[]string{"japonais", "japanese"}, "japanese"},
	{[]string{"russe", "russian"}, "russian"},
	{[]string{"néerlandais", "neerlandais", "dutch"}, "dutch"},
	{[]string{"hindi"}, "hindi"},
	{[]string{"coréen", "coreen", "korean"}, "korean"},
	{[]string{"turc", "turkish"}, "turkish"},
	{[]string{"polonais", "polish"}, "polish"},
}

// Seniority levels and their keyword triggers.
const (
	seniorityEntry     = "Entry Level"
	seniorityJunior    = "Junior"
	seniorityMid       = "Mid Level"
	seniorityMidSenior = "Mid-Senior Level"
	senioritySenior    = "Senior"
	seniorityLead      = "Lead/Principal"
)

var leadTitleRe = regexp.MustCompile(`(?i)\b(lead|senior|principal|architect|chief|director)\b`)

var advancedDegreeRe = regexp.MustCompile(`(?i)\b(master|phd|ph\.d|doctorate|doctorat|ingénieur|mba)\b`)

// Industry buckets scored over the skills and experience descriptions.
// Declaration order breaks ties; no keyword hit at all leaves the
// industry empty.
var industryBuckets = []struct {
	name     string
	keywords []string
}{
	{"Software Development", []string{
		"software", "java", "c++", "c#", ".net", "php", "ruby",
		"backend", "api", "rest api", "microservices", "agile", "scrum",
		"oop", "tdd", "git", "logiciel", "développement",
	}},
	{"Data Science", []string{
		"machine learning", "deep learning", "data science",
		"data analysis", "nlp", "computer vision", "tensorflow",
		"pytorch", "pandas", "numpy", "scikit-learn", "spark", "hadoop",
		"etl", "statistics", "données",
	}},
	{"DevOps", []string{
		"devops", "docker", "kubernetes", "terraform", "ansible",
		"jenkins", "ci/cd", "prometheus", "grafana", "monitoring",
		"automation", "infrastructure", "linux",
	}},
	{"Mobile Development", []string{
		"android", "ios", "swift", "kotlin", "flutter", "react native",
		"mobile", "objective-c", "xamarin", "app store",
	}},
	{"Web Development", []string{
		"html", "css", "javascript", "typescript", "react", "angular",
		"vue", "node.js", "frontend", "django", "flask", "laravel",
		"symfony", "rails", "sass", "webpack", "web",
	}},
	{"Cloud Computing", []string{
		"aws", "azure", "gcp", "google cloud", "cloud", "serverless",
		"lambda", "s3", "ec2", "heroku",
	}},
}

// Month names for date-range parsing, English and French, with common
// abbreviations.
var monthPattern = `(?:jan(?:uary|vier)?|feb(?:ruary)?|f[ée]vr?(?:ier)?|mar(?:ch|s)?|apr(?:il)?|avr(?:il)?|may|mai|june?|juin|july?|juil(?:let)?|aug(?:ust)?|ao[ûu]t|sep(?:t(?:ember|embre)?)?|oct(?:ober|obre)?|nov(?:ember|embre)?|dec(?:ember)?|d[ée]c(?:embre)?)\.?`

// knownCities backs the gazetteer location strategy over the top of
// the document.
var knownCities = []string{
	"Paris", "Lyon", "Marseille", "Toulouse", "Bordeaux", "Lille",
	"Nantes", "Nice", "Strasbourg", "Montpellier", "Rennes", "Grenoble",
	"Casablanca", "Rabat", "Tunis", "Alger", "Dakar", "Abidjan",
	"London", "Dublin", "Berlin", "Munich", "Amsterdam", "Brussels",
	"Bruxelles", "Geneva", "Genève", "Zurich", "Madrid", "Barcelona",
	"Lisbon", "Milan", "New York", "Boston", "San Francisco", "Seattle",
	"Chicago", "Austin", "Toronto", "Montreal", "Montréal",
}

// Case-sensitive on purpose: "Nice" the city, not "nice" the word.
var knownCityRe = regexp.MustCompile(`\b(` + strings.Join(knownCities, "|") + `)\b`)
