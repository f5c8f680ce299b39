package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockRepo *MockGroupRepository
	service  portssvc.GroupSvcFacade
	ctx      context.Context
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockGroupRepository)
	suite.service = services.NewGroupService(suite.mockRepo, services.ConfirmPolicy{Attempts: 3, Interval: time.Millisecond})
	suite.ctx = context.Background()
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}

func (suite *GroupServiceTestSuite) TestCreateGroup_Success() {
	suite.mockRepo.On("SaveGroup", suite.ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.GroupID == "chat-42" && assert.ObjectsAreEqual([]string{alice, bob}, g.Members) && g.CreatedBy == alice
	})).Return(nil).Once()

	group, err := suite.service.CreateGroup(suite.ctx, " chat-42 ", []string{alice, bob, alice}, alice)

	suite.Require().NoError(err)
	suite.Equal("chat-42", group.GroupID)
	suite.Equal([]string{alice, bob}, group.Members)
	suite.False(group.CreatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_InvalidMembers() {
	cases := map[string][]string{
		"empty":           {},
		"creator missing": {bob, carol},
		"blank member":    {alice, " "},
	}
	for name, members := range cases {
		_, err := suite.service.CreateGroup(suite.ctx, "g1", members, alice)
		suite.ErrorIs(err, apperrors.ErrInvalidMembers, name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_BlankID() {
	_, err := suite.service.CreateGroup(suite.ctx, "  ", []string{alice}, alice)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_AlreadyExists() {
	suite.mockRepo.On("SaveGroup", suite.ctx, mock.Anything).Return(apperrors.ErrAlreadyExists).Once()

	group, err := suite.service.CreateGroup(suite.ctx, "g1", []string{alice}, alice)

	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrAlreadyExists)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *GroupServiceTestSuite) TestEnsureGroupExists_AlreadyThere() {
	existing := &domain.Group{GroupID: "g1", Members: []string{alice}}
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(existing, nil).Once()

	group, err := suite.service.EnsureGroupExists(suite.ctx, "g1", []string{alice, bob}, alice)

	suite.Require().NoError(err)
	suite.Equal(existing, group)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestEnsureGroupExists_PollsUntilVisible() {
	created := &domain.Group{GroupID: "g1", Members: []string{alice, bob}}
	// initial check, then two misses before the write becomes visible
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(nil, apperrors.ErrGroupNotFound).Times(3)
	suite.mockRepo.On("SaveGroup", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(created, nil).Once()

	group, err := suite.service.EnsureGroupExists(suite.ctx, "g1", []string{alice, bob}, alice)

	suite.Require().NoError(err)
	suite.Equal(created, group)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestEnsureGroupExists_ConcurrentCreatorWins() {
	created := &domain.Group{GroupID: "g1", Members: []string{bob}}
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(nil, apperrors.ErrGroupNotFound).Once()
	suite.mockRepo.On("SaveGroup", suite.ctx, mock.Anything).Return(apperrors.ErrAlreadyExists).Once()
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(created, nil).Once()

	group, err := suite.service.EnsureGroupExists(suite.ctx, "g1", []string{alice}, alice)

	suite.Require().NoError(err)
	suite.Equal(created, group)
}

func (suite *GroupServiceTestSuite) TestEnsureGroupExists_TimesOut() {
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(nil, apperrors.ErrGroupNotFound)
	suite.mockRepo.On("SaveGroup", suite.ctx, mock.Anything).Return(nil).Once()

	group, err := suite.service.EnsureGroupExists(suite.ctx, "g1", []string{alice}, alice)

	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrCreationTimedOut)
	// one existence check plus three confirmation polls
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindGroupByID", 4)
}

func (suite *GroupServiceTestSuite) TestEnsureGroupExists_HonoursCancellation() {
	svc := services.NewGroupService(suite.mockRepo, services.ConfirmPolicy{Attempts: 5, Interval: time.Hour})
	ctx, cancel := context.WithCancel(suite.ctx)
	suite.mockRepo.On("FindGroupByID", ctx, "g1").Return(nil, apperrors.ErrGroupNotFound)
	suite.mockRepo.On("SaveGroup", ctx, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

	_, err := svc.EnsureGroupExists(ctx, "g1", []string{alice}, alice)

	suite.ErrorIs(err, context.Canceled)
}

func (suite *GroupServiceTestSuite) TestIsMember() {
	group := &domain.Group{GroupID: "g1", Members: []string{alice, bob}}
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(group, nil)
	suite.mockRepo.On("FindGroupByID", suite.ctx, "nope").Return(nil, apperrors.ErrGroupNotFound)

	ok, err := suite.service.IsMember(suite.ctx, "g1", bob)
	suite.NoError(err)
	suite.True(ok)

	ok, err = suite.service.IsMember(suite.ctx, "g1", carol)
	suite.NoError(err)
	suite.False(ok)

	ok, err = suite.service.IsMember(suite.ctx, "nope", alice)
	suite.NoError(err)
	suite.False(ok)
}

func (suite *GroupServiceTestSuite) TestIsMember_RepoError() {
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(nil, assert.AnError)

	_, err := suite.service.IsMember(suite.ctx, "g1", alice)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *GroupServiceTestSuite) TestAddMembers() {
	before := &domain.Group{GroupID: "g1", Members: []string{alice}}
	after := &domain.Group{GroupID: "g1", Members: []string{alice, bob}}
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(before, nil).Once()
	suite.mockRepo.On("AddGroupMembers", suite.ctx, "g1", []string{bob}, mock.AnythingOfType("time.Time")).Return([]string{bob}, nil).Once()
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(after, nil).Once()

	group, err := suite.service.AddMembers(suite.ctx, "g1", []string{bob, bob}, alice)

	suite.Require().NoError(err)
	suite.Equal(after, group)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAddMembers_CallerNotMember() {
	suite.mockRepo.On("FindGroupByID", suite.ctx, "g1").Return(&domain.Group{GroupID: "g1", Members: []string{alice}}, nil)

	_, err := suite.service.AddMembers(suite.ctx, "g1", []string{carol}, bob)

	suite.ErrorIs(err, apperrors.ErrNotAMember)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestListUserGroups_Empty() {
	suite.mockRepo.On("ListGroupsByAccountID", suite.ctx, alice).Return(nil, nil)

	groups, err := suite.service.ListUserGroups(suite.ctx, alice)

	suite.NoError(err)
	suite.NotNil(groups)
	suite.Empty(groups)
}
