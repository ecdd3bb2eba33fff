package entity

import (
	"slices"
	"strings"
	"time"
)

// Profile is keyed 1:1 by the owning user's id and carries its experience and
// education entries most-recent-first.
type Profile struct {
	ID             string       `json:"_id"`
	UserID         string       `json:"-"`
	User           *UserSummary `json:"user,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"-"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	ID          string     `json:"_id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"_id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

func (e Experience) EntryID() string { return e.ID }
func (e Education) EntryID() string  { return e.ID }

// ProfileFields is a partial profile write. A nil field was not supplied and
// must leave the stored value alone.
type ProfileFields struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	YouTube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}

// SocialSet returns the supplied social links keyed by their stored name.
func (f ProfileFields) SocialSet() map[string]string {
	out := map[string]string{}
	for k, v := range map[string]*string{
		"youtube":   f.YouTube,
		"twitter":   f.Twitter,
		"facebook":  f.Facebook,
		"linkedin":  f.LinkedIn,
		"instagram": f.Instagram,
	} {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// Apply copies the supplied fields onto p.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Bio, f.Bio)
	set(&p.Status, f.Status)
	set(&p.GithubUsername, f.GithubUsername)
	if f.Skills != nil {
		p.Skills = slices.Clone(f.Skills)
	}
	set(&p.Social.YouTube, f.YouTube)
	set(&p.Social.Twitter, f.Twitter)
	set(&p.Social.Facebook, f.Facebook)
	set(&p.Social.LinkedIn, f.LinkedIn)
	set(&p.Social.Instagram, f.Instagram)
}

// ParseSkills splits comma separated free text into trimmed, non-empty tags in input order.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type entry interface {
	EntryID() string
}

// Prepend returns a new slice with e at the front.
func Prepend[T any](items []T, e T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, e)
	return append(out, items...)
}

// RemoveByID drops the entry with the given id. An unknown id returns items unchanged.
func RemoveByID[T entry](items []T, id string) []T {
	idx := slices.IndexFunc(items, func(e T) bool { return e.EntryID() == id })
	if idx < 0 {
		return items
	}
	return slices.Delete(slices.Clone(items), idx, idx+1)
}
