package store

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// User fixture data
var seedUsers = []model.User{
	{Username: "admin", Password: "admin123"},
	{Username: "user1", Password: "user123"},
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Article fixture data
var seedArticles = []model.Article{
	{
		Title:       "FeedMusic launches a brand new listening experience",
		Description: "We are happy to announce a brand new music experience with better sound quality and a wider selection. Whatever you like to listen to, you will find it here.",
		Image:       "1d920bfa-a07e-4656-a795-4601c24f6504.png",
		Author:      "admin",
		CreatedAt:   day(2023, time.June, 15),
	},
	{
		Title:       "Summer music festival starts soon",
		Description: "The yearly summer festival opens next month with many well-known artists on stage. Early tickets come with a discount, don't miss it.",
		Image:       "presentation-background.jpg",
		Author:      "user1",
		CreatedAt:   day(2023, time.June, 10),
	},
	{
		Title:       "New recommendation algorithm is live",
		Description: "Our updated recommendation algorithm learns from your listening habits to suggest music more precisely. Discover more of what you like.",
		Image:       "start-music-background.jpg",
		Author:      "admin",
		CreatedAt:   day(2023, time.June, 5),
	},
	{
		Title:       "FeedMusic mobile app update",
		Description: "A major update for the mobile app adds offline downloads, lyrics and more. Update now to try the new features.",
		Image:       "1d920bfa-a07e-4656-a795-4601c24f6504.png",
		Author:      "user1",
		CreatedAt:   day(2023, time.May, 28),
	},
	{
		Title:       "Partnership with major record labels",
		Description: "FeedMusic has partnered with several major record labels to release exclusive albums. Listen to new music the moment it comes out.",
		Image:       "presentation-background.jpg",
		Author:      "admin",
		CreatedAt:   day(2023, time.May, 20),
	},
	{
		Title:       "Songwriting contest registration opens",
		Description: "Registration for the first FeedMusic songwriting contest is open. Professionals and hobbyists alike can enter and win prizes.",
		Image:       "start-music-background.jpg",
		Author:      "admin",
		CreatedAt:   day(2023, time.May, 15),
	},
	{
		Title:       "Welcome offer for new users",
		Description: "New users get a free 30 day premium trial with no ads and high quality streaming.",
		Image:       "1d920bfa-a07e-4656-a795-4601c24f6504.png",
		Author:      "user1",
		CreatedAt:   day(2023, time.May, 10),
	},
	{
		Title:       "FeedMusic community is live",
		Description: "The community feature is now available. Share the music you love and meet other listeners.",
		Image:       "presentation-background.jpg",
		Author:      "admin",
		CreatedAt:   day(2023, time.May, 5),
	},
	{
		Title:       "Sound quality upgrade complete",
		Description: "After months of work every track now plays in high definition audio.",
		Image:       "start-music-background.jpg",
		Author:      "user1",
		CreatedAt:   day(2023, time.April, 30),
	},
}

// Seed loads the fixture users and articles into an empty store. A store
// that already has users is left alone.
func Seed(ctx context.Context, s Store) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	for _, u := range seedUsers {
		if _, err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seeding user %q: %w", u.Username, err)
		}
	}

	for _, a := range seedArticles {
		if _, err := s.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("seeding article %q: %w", a.Title, err)
		}
	}

	return nil
}
