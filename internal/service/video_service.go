package service

import (
	"context"
	"time"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
	"github.com/HarshChauhan111/stream-sync-lite/internal/token"
)

type CreateVideoInput struct {
	Title         string
	ChannelName   string
	ThumbnailURL  string
	VideoURL      string
	Duration      string
	PublishedDate time.Time
	Description   *string
}

type VideoService interface {
	// viewer is nil for anonymous callers; progress enrichment is skipped then.
	List(ctx context.Context, viewer *token.Payload, limit, offset int) ([]model.VideoWithProgress, int, error)
	Get(ctx context.Context, viewer *token.Payload, videoID int64) (*model.VideoWithProgress, error)
	SaveProgress(ctx context.Context, userID, videoID int64, position int) (*model.VideoProgress, error)
	ToggleFavorite(ctx context.Context, userID, videoID int64) (bool, error)
	Favorites(ctx context.Context, userID int64) ([]model.VideoWithProgress, error)
	CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error)
}

type videoService struct {
	videoRepo    repository.VideoRepository
	progressRepo repository.ProgressRepository
}

func NewVideoService(videoRepo repository.VideoRepository, progressRepo repository.ProgressRepository) VideoService {
	return &videoService{videoRepo: videoRepo, progressRepo: progressRepo}
}

func (s *videoService) List(ctx context.Context, viewer *token.Payload, limit, offset int) ([]model.VideoWithProgress, int, error) {
	videos, err := s.videoRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.videoRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	result := make([]model.VideoWithProgress, len(videos))
	for i, v := range videos {
		result[i] = model.VideoWithProgress{Video: v}
	}

	if viewer != nil && len(videos) > 0 {
		videoIDs := make([]int64, len(videos))
		for i, v := range videos {
			videoIDs[i] = v.ID
		}

		progress, err := s.progressRepo.ListByUserAndVideos(ctx, viewer.UserID, videoIDs)
		if err != nil {
			return nil, 0, err
		}

		byVideo := make(map[int64]model.VideoProgress, len(progress))
		for _, p := range progress {
			byVideo[p.VideoID] = p
		}

		for i := range result {
			if p, ok := byVideo[result[i].ID]; ok {
				result[i].IsFavorite = p.IsFavorite
				result[i].LastPlayedPosition = p.LastPlayedPosition
			}
		}
	}

	return result, total, nil
}

func (s *videoService) Get(ctx context.Context, viewer *token.Payload, videoID int64) (*model.VideoWithProgress, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, notFoundError("Video not found")
	}

	result := &model.VideoWithProgress{Video: *video}

	if viewer != nil {
		progress, err := s.progressRepo.FindByUserAndVideo(ctx, viewer.UserID, videoID)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			result.IsFavorite = progress.IsFavorite
			result.LastPlayedPosition = progress.LastPlayedPosition
		}
	}

	return result, nil
}

func (s *videoService) SaveProgress(ctx context.Context, userID, videoID int64, position int) (*model.VideoProgress, error) {
	if position < 0 {
		return nil, validationError("Invalid lastPlayedPosition")
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, notFoundError("Video not found")
	}

	return s.progressRepo.UpsertPosition(ctx, userID, videoID, position)
}

// ToggleFavorite flips the flag, creating the progress row (favorite,
// position 0) on first touch. Returns the new favorite state.
func (s *videoService) ToggleFavorite(ctx context.Context, userID, videoID int64) (bool, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video == nil {
		return false, notFoundError("Video not found")
	}

	progress, err := s.progressRepo.FindByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		return false, err
	}

	if progress == nil {
		created := &model.VideoProgress{UserID: userID, VideoID: videoID, IsFavorite: true}
		if err := s.progressRepo.Create(ctx, created); err != nil {
			return false, err
		}
		return true, nil
	}

	next := !progress.IsFavorite
	if err := s.progressRepo.SetFavorite(ctx, userID, videoID, next); err != nil {
		return false, err
	}

	return next, nil
}

func (s *videoService) Favorites(ctx context.Context, userID int64) ([]model.VideoWithProgress, error) {
	favorites, err := s.progressRepo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.VideoWithProgress, len(favorites))
	for i, f := range favorites {
		result[i] = model.VideoWithProgress{
			Video:              f.Video,
			IsFavorite:         true,
			LastPlayedPosition: f.LastPlayedPosition,
		}
	}

	return result, nil
}

func (s *videoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	publishedDate := input.PublishedDate
	if publishedDate.IsZero() {
		publishedDate = time.Now()
	}

	duration := input.Duration
	if duration == "" {
		duration = "0:00"
	}

	video := &model.Video{
		Title:         input.Title,
		ChannelName:   input.ChannelName,
		ThumbnailURL:  input.ThumbnailURL,
		VideoURL:      input.VideoURL,
		Duration:      duration,
		PublishedDate: publishedDate,
		Description:   input.Description,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}
