package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Words  *WordRepository
	Scores *ScoreRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Words:  NewWordRepository(),
		Scores: NewScoreRepository(),
	}
}
