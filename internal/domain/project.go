package domain

// Project owns one task tree. RootID is the id of its level-0 node.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   string
	EndDate     string
	RootID      string
}

// DisplayName returns the project name, falling back to its id.
func (p *Project) DisplayName() string {
	return CoalesceStr(p.Name, "Project "+p.ID)
}
