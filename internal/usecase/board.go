package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/domain"
)

// Board is the community board: lost-and-found posts and memorial tributes,
// both newest first.
type Board struct {
	LostFound      []domain.LostFound `json:"lostFound"`
	LostFoundState collection.State   `json:"lostFoundState"`
	Memorials      []domain.Memorial  `json:"memorials"`
	MemorialsState collection.State   `json:"memorialsState"`
}

type BoardUsecase struct {
	lostFound *RecordUsecase[domain.LostFound]
	memorials *RecordUsecase[domain.Memorial]
}

func NewBoardUsecase(session *Session) *BoardUsecase {
	return &BoardUsecase{
		lostFound: session.LostFound,
		memorials: session.Memorials,
	}
}

// Get refreshes both feeds concurrently. A stale result keeps what is
// already held.
func (uc *BoardUsecase) Get(ctx context.Context) (Board, error) {
	ctx, span := tracer.Start(ctx, "Board.Usecase.Get")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreStale(uc.lostFound.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(uc.memorials.Refresh(gctx)) })
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return Board{}, err
	}

	return Board{
		LostFound:      uc.lostFound.SortedDescending(),
		LostFoundState: uc.lostFound.State(),
		Memorials:      uc.memorials.SortedDescending(),
		MemorialsState: uc.memorials.State(),
	}, nil
}

func ignoreStale(_ collection.State, err error) error {
	if errors.Is(err, ErrStaleResult) {
		return nil
	}
	return err
}
