package statistics

type SnapshotDTO struct {
	Year          int      `json:"year" validate:"required,min=2000,max=2100"`
	AverageSalary *float64 `json:"average_salary,omitempty" validate:"omitempty,min=0"`
	HighestSalary *float64 `json:"highest_salary,omitempty" validate:"omitempty,min=0"`
}

type SnapshotListResponse struct {
	Snapshots []*Snapshot `json:"snapshots"`
}
