package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// ShowtimeDay groups the showtimes that start on one date.
type ShowtimeDay struct {
	Date      string
	Showtimes []RoomShowtime
}

// RoomShowtime is a showtime with the name of its room resolved.
type RoomShowtime struct {
	model.Showtime
	RoomName string
}

// MovieDetail is what the movie page shows.
type MovieDetail struct {
	Movie model.Movie
	Days  []ShowtimeDay
}

// MovieService backs the movie detail page.
type MovieService struct {
	movies    Movies
	rooms     Rooms
	showtimes Showtimes
	loc       *time.Location
}

func NewMovieService(movies Movies, rooms Rooms, showtimes Showtimes, loc *time.Location) *MovieService {
	if loc == nil {
		loc = time.UTC
	}
	return &MovieService{movies: movies, rooms: rooms, showtimes: showtimes, loc: loc}
}

// Detail loads the movie, its showtimes and the rooms concurrently.
func (s *MovieService) Detail(ctx context.Context, movieID int64) (*MovieDetail, error) {
	var (
		movie     *model.Movie
		showtimes []model.Showtime
		rooms     []model.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movie, err = s.movies.Get(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.showtimes.ListByMovie(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		rooms, err = s.rooms.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load movie %d: %w", movieID, err)
	}
	names := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return &MovieDetail{Movie: *movie, Days: GroupByDay(showtimes, names, s.loc)}, nil
}

// GroupByDay buckets showtimes by start date in loc.  Days and the showtimes
// inside each day are sorted by time.
func GroupByDay(showtimes []model.Showtime, roomNames map[int64]string, loc *time.Location) []ShowtimeDay {
	sorted := append([]model.Showtime(nil), showtimes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartTime.Before(sorted[j].StartTime.Time) })

	var days []ShowtimeDay
	for _, st := range sorted {
		date := st.StartTime.In(loc).Format(DayLayout)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, ShowtimeDay{Date: date})
		}
		last := &days[len(days)-1]
		last.Showtimes = append(last.Showtimes, RoomShowtime{Showtime: st, RoomName: roomNames[st.RoomID]})
	}
	return days
}
