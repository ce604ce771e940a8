package service

import (
	"strings"

	"musify/internal/microservices/http-api/models"
	"musify/internal/middleware/auth"
	"musify/internal/testutil"
)

func (s *ServiceSuite) TestDeleteUserRecomputesEveryAlbum() {
	x := testutil.SeedAlbum(s.T(), s.db, "X")
	y := testutil.SeedAlbum(s.T(), s.db, "Y")
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")
	s.review(a, x, 5)
	s.review(a, y, 1)
	s.review(b, x, 3)
	s.review(b, y, 2)
	s.Equal(4.0, s.albumRating(x.ID))
	s.Equal(1.5, s.albumRating(y.ID))

	s.Require().NoError(s.users.DeleteUser(s.ctx, identityOf(a), a.ID))

	s.Equal(3.0, s.albumRating(x.ID))
	s.Equal(2.0, s.albumRating(y.ID))
	s.ElementsMatch([]int64{x.ID, y.ID}, s.cache.invalidated[len(s.cache.invalidated)-1])

	_, err := s.store.Repos().Users.FindByID(s.ctx, a.ID)
	s.Error(err)
	_, err = s.users.GetCurrentUser(s.ctx, identityOf(a))
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestDeleteUserPermissions() {
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")

	s.ErrorIs(s.users.DeleteUser(s.ctx, identityOf(b), a.ID), ErrForbidden)

	admin := Identity{UserID: b.ID, Role: models.RoleAdmin}
	s.NoError(s.users.DeleteUser(s.ctx, admin, a.ID))
	s.ErrorIs(s.users.DeleteUser(s.ctx, admin, a.ID), ErrUserNotFound)
}

func (s *ServiceSuite) TestDeleteUserWithoutReviews() {
	a := testutil.SeedUser(s.T(), s.db, "a")
	s.NoError(s.users.DeleteUser(s.ctx, identityOf(a), a.ID))
}

func (s *ServiceSuite) TestGetCurrentUserIncludesReviewsWithAlbums() {
	album := testutil.SeedAlbum(s.T(), s.db, "Speak No Evil")
	a := testutil.SeedUser(s.T(), s.db, "a")
	s.review(a, album, 4)

	user, err := s.users.GetCurrentUser(s.ctx, identityOf(a))
	s.Require().NoError(err)
	s.Require().Len(user.Reviews, 1)
	s.Require().NotNil(user.Reviews[0].Album)
	s.Equal("Speak No Evil", user.Reviews[0].Album.Title)
}

func (s *ServiceSuite) TestUpdateUser() {
	a := testutil.SeedUser(s.T(), s.db, "a")
	b := testutil.SeedUser(s.T(), s.db, "b")

	updated, err := s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{
		Username: "alice",
		Email:    "Alice@Musify.test",
	})
	s.Require().NoError(err)
	s.Equal("alice", updated.Username)
	s.Equal("alice@musify.test", updated.Email)
	s.Equal(a.Password, updated.Password)

	_, err = s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "b", Email: "alice@musify.test"})
	s.ErrorIs(err, ErrNameInUse)

	_, err = s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "alice", Email: b.Email})
	s.ErrorIs(err, ErrEmailInUse)

	_, err = s.users.UpdateUser(s.ctx, identityOf(b), a.ID, UpdateUserInput{Username: "mallory", Email: "m@musify.test"})
	s.ErrorIs(err, ErrNotAccountOwner)

	_, err = s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "", Email: "x@musify.test"})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceSuite) TestUpdateUserPassword() {
	a := testutil.SeedUser(s.T(), s.db, "a")

	short := "short"
	_, err := s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "a", Email: a.Email, Password: &short})
	s.ErrorIs(err, ErrValidation)

	long := strings.Repeat("p", 80)
	_, err = s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "a", Email: a.Email, Password: &long})
	s.ErrorIs(err, ErrValidation)

	fresh := "a much better password"
	updated, err := s.users.UpdateUser(s.ctx, identityOf(a), a.ID, UpdateUserInput{Username: "a", Email: a.Email, Password: &fresh})
	s.Require().NoError(err)
	s.NoError(auth.VerifyPassword(updated.Password, fresh))
}

func (s *ServiceSuite) TestListUsers() {
	testutil.SeedUser(s.T(), s.db, "a")
	testutil.SeedUser(s.T(), s.db, "b")

	users, err := s.users.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}
