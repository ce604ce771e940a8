package service

import (
	"musify/internal/testutil"
)

func validAlbum(title string) AlbumInput {
	return AlbumInput{
		Title:       title,
		Artist:      "Miles Davis",
		Description: "Modal jazz",
		ImageURL:    "https://img.musify.test/" + title + ".jpg",
	}
}

func (s *ServiceSuite) TestCreateAlbum() {
	in := validAlbum(" Sketches of Spain ")
	album, err := s.albums.CreateAlbum(s.ctx, in)
	s.Require().NoError(err)

	s.NotZero(album.ID)
	s.Equal("Sketches of Spain", album.Title)
	s.Zero(album.Rating)

	for _, missing := range []AlbumInput{
		{Artist: "a", Description: "d", ImageURL: "u"},
		{Title: "t", Description: "d", ImageURL: "u"},
		{Title: "t", Artist: "a", ImageURL: "u"},
		{Title: "t", Artist: "a", Description: "d", ImageURL: "   "},
	} {
		_, err := s.albums.CreateAlbum(s.ctx, missing)
		s.ErrorIs(err, ErrValidation)
	}
}

func (s *ServiceSuite) TestListAlbumsNewestFirstAndCached() {
	first, err := s.albums.CreateAlbum(s.ctx, validAlbum("First"))
	s.Require().NoError(err)
	second, err := s.albums.CreateAlbum(s.ctx, validAlbum("Second"))
	s.Require().NoError(err)

	list, err := s.albums.ListAlbums(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)
	s.Len(s.cache.list, 2)

	_, err = s.albums.CreateAlbum(s.ctx, validAlbum("Third"))
	s.Require().NoError(err)
	s.Nil(s.cache.list)

	list, err = s.albums.ListAlbums(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 3)
}

func (s *ServiceSuite) TestUpdateAlbumKeepsRating() {
	album := testutil.SeedAlbum(s.T(), s.db, "Bitches Brew")
	a := testutil.SeedUser(s.T(), s.db, "a")
	s.review(a, album, 4.5)

	updated, err := s.albums.UpdateAlbum(s.ctx, album.ID, validAlbum("Bitches Brew (Legacy)"))
	s.Require().NoError(err)
	s.Equal("Bitches Brew (Legacy)", updated.Title)
	s.Equal(4.5, updated.Rating)

	_, err = s.albums.UpdateAlbum(s.ctx, 9999, validAlbum("Nope"))
	s.ErrorIs(err, ErrAlbumNotFound)

	_, err = s.albums.UpdateAlbum(s.ctx, album.ID, AlbumInput{})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceSuite) TestDeleteAlbumCascadesReviews() {
	album := testutil.SeedAlbum(s.T(), s.db, "In a Silent Way")
	other := testutil.SeedAlbum(s.T(), s.db, "Filles de Kilimanjaro")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	ra := s.review(a, album, 4)
	rb := s.review(b, album, 5)
	kept := s.review(a, other, 3)

	s.Require().NoError(s.albums.DeleteAlbum(s.ctx, album.ID))

	_, err := s.albums.GetAlbum(s.ctx, album.ID)
	s.ErrorIs(err, ErrAlbumNotFound)
	for _, id := range []int64{ra.ID, rb.ID} {
		_, err := s.reviews.GetReview(s.ctx, id)
		s.ErrorIs(err, ErrReviewNotFound)
	}
	_, err = s.albums.ListAlbumReviews(s.ctx, album.ID)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.reviews.GetReview(s.ctx, kept.ID)
	s.NoError(err)
	s.Equal(3.0, s.albumRating(other.ID))
}

func (s *ServiceSuite) TestDeleteMissingAlbum() {
	err := s.albums.DeleteAlbum(s.ctx, 12345)
	s.ErrorIs(err, ErrAlbumNotDeleted)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceSuite) TestListAlbumReviews() {
	album := testutil.SeedAlbum(s.T(), s.db, "Nefertiti")

	reviews, err := s.albums.ListAlbumReviews(s.ctx, album.ID)
	s.Require().NoError(err)
	s.NotNil(reviews)
	s.Empty(reviews)

	a := testutil.SeedUser(s.T(), s.db, "a")
	s.review(a, album, 2.5)

	reviews, err = s.albums.ListAlbumReviews(s.ctx, album.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Require().NotNil(reviews[0].User)
	s.Equal("a", reviews[0].User.Username)

	_, err = s.albums.ListAlbumReviews(s.ctx, 9999)
	s.ErrorIs(err, ErrAlbumNotFound)
}
