package stats

import (
	"context"

	"fileservice/internal/modules/file"
	"fileservice/internal/pkg/pathgen"
)

// FileStat is one aggregate cell: how many files and how many bytes.
type FileStat struct {
	Count      int64  `json:"count"`
	Size       int64  `json:"size"`
	SizePretty string `json:"size_pretty"`
}

type StatusStats struct {
	Unused  FileStat `json:"unused"`
	Used    FileStat `json:"used"`
	Deleted FileStat `json:"deleted"`
}

type TypeStats struct {
	Avatar      FileStat `json:"avatar"`
	Post        FileStat `json:"post"`
	Reply       FileStat `json:"reply"`
	SectionIcon FileStat `json:"section_icon"`
}

// Overview aggregates the registry by status and category. Derived entirely
// from File rows; totals exclude deleted files.
type Overview struct {
	TotalFiles      int64       `json:"total_files"`
	TotalSize       int64       `json:"total_size"`
	TotalSizePretty string      `json:"total_size_pretty"`
	ByStatus        StatusStats `json:"by_status"`
	ByType          TypeStats   `json:"by_type"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	count, size, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalFiles:      count,
		TotalSize:       size,
		TotalSizePretty: pathgen.FormatSize(size),
		ByStatus: StatusStats{
			Unused:  emptyStat(),
			Used:    emptyStat(),
			Deleted: emptyStat(),
		},
		ByType: TypeStats{
			Avatar:      emptyStat(),
			Post:        emptyStat(),
			Reply:       emptyStat(),
			SectionIcon: emptyStat(),
		},
	}

	byStatus, err := s.repo.ByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stat := FileStat{Count: b.Count, Size: b.Size, SizePretty: pathgen.FormatSize(b.Size)}
		switch file.FileStatus(b.Key) {
		case file.StatusUnused:
			overview.ByStatus.Unused = stat
		case file.StatusUsed:
			overview.ByStatus.Used = stat
		case file.StatusDeleted:
			overview.ByStatus.Deleted = stat
		}
	}

	byType, err := s.repo.ByType(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range byType {
		stat := FileStat{Count: b.Count, Size: b.Size, SizePretty: pathgen.FormatSize(b.Size)}
		switch file.FileType(b.Key) {
		case file.TypeAvatar:
			overview.ByType.Avatar = stat
		case file.TypePost:
			overview.ByType.Post = stat
		case file.TypeReply:
			overview.ByType.Reply = stat
		case file.TypeSectionIcon:
			overview.ByType.SectionIcon = stat
		}
	}

	return overview, nil
}

func emptyStat() FileStat {
	return FileStat{SizePretty: pathgen.FormatSize(0)}
}
