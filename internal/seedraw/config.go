package seedraw

// Config holds configuration for the raw data seeder.
type Config struct {
	OutputDir  string // Root directory for season subdirectories
	Seasons    []int  // Season years to generate
	Rounds     int    // Rounds per season
	Players    int    // Players per round file
	LatinRatio int    // Percentage of files written as Latin-1
}

// Stats holds seeding statistics.
type Stats struct {
	FilesWritten int
	RowsWritten  int
}
