package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/core/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

func employee(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Sam Rivera", Role: domain.RoleEmployee, IsActive: true}
}

func admin(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Alex Chen", Role: domain.RoleAdmin, IsActive: true}
}

func (suite *UserServiceTestSuite) TestListUsers_AdminOnly() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(employee("user-1"), nil).Once()

	_, err := suite.service.ListUsers(suite.ctx, "user-1", 20, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_AdminSeesEveryone() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin("admin-1"), nil).Once()
	suite.mockUserRepo.On("FindUsers", suite.ctx, 20, 0).
		Return([]domain.User{*employee("user-1"), *admin("admin-1")}, nil).Once()

	users, err := suite.service.ListUsers(suite.ctx, "admin-1", 20, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OwnProfile() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(employee("user-1"), nil).Once()
	newName := "Sam R."
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == newName && u.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Name: &newName}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_EmployeeCannotChangeRole() {
	role := domain.RoleAdmin
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(employee("user-1"), nil)

	_, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Role: &role}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminMayDeactivate() {
	inactive := false
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(employee("user-1"), nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin("admin-1"), nil)
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return !u.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{IsActive: &inactive}, "admin-1")

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
}

func (suite *UserServiceTestSuite) TestUpdateUser_UnknownRoleRejected() {
	role := domain.UserRole("superuser")
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(employee("user-1"), nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin("admin-1"), nil)

	_, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Role: &role}, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestDeleteUser_AdminOnly() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-2").Return(employee("user-2"), nil).Once()

	err := suite.service.DeleteUser(suite.ctx, "user-1", "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfDeleteRejected() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin("admin-1"), nil).Once()

	err := suite.service.DeleteUser(suite.ctx, "admin-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").Return(admin("admin-1"), nil).Once()
	suite.mockUserRepo.On("DeleteUser", suite.ctx, "user-1").Return(nil).Once()

	err := suite.service.DeleteUser(suite.ctx, "user-1", "admin-1")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
