package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/core/identity"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

// groupHandler handles HTTP requests related to groups and their members.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: gs}
}

// registerGroupRoutes registers routes for groups and their membership.
func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listUserGroups)
	}

	group := rg.Group("/groups/:group_id")
	{
		group.GET("", h.getGroup)
		group.POST("/members", h.addMembers)
		group.GET("/members/:account/is-member", h.isMember)
	}
}

// createGroup godoc
// @Summary Register a group
// @Description Registers a group with an initial member list. The caller must be among the members.
// @Description With ensure=true an existing group is returned as is, and a new one is polled until it is visible.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   ensure query bool false "Return the existing group instead of failing"
// @Param   group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Success 200 {object} dto.GroupResponse "Existing group (ensure=true)"
// @Failure 400 {object} map[string]string "Invalid members"
// @Failure 409 {object} map[string]string "Group already exists"
// @Failure 504 {object} map[string]string "Group creation not confirmed in time"
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := callerID(c, logger)
	if !ok {
		return
	}

	members, err := identity.ResolveAll(req.Members, nil)
	if err != nil {
		respondError(c, logger, err, "create group")
		return
	}

	logger = logger.With(slog.String("group_id", req.GroupID))
	logger.Info("Received request to create group", slog.Int("members", len(members)))

	if c.Query("ensure") == "true" {
		group, err := h.groupService.EnsureGroupExists(c.Request.Context(), req.GroupID, members, creatorID)
		if err != nil {
			respondError(c, logger, err, "ensure group")
			return
		}
		c.JSON(http.StatusOK, dto.ToGroupResponse(group))
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req.GroupID, members, creatorID)
	if err != nil {
		respondError(c, logger, err, "create group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// listUserGroups godoc
// @Summary List groups for current account
// @Tags groups
// @Produce  json
// @Success 200 {object} dto.ListGroupsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listUserGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerID(c, logger)
	if !ok {
		return
	}

	groups, err := h.groupService.ListUserGroups(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "list groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGroupsResponse(groups))
}

// getGroup godoc
// @Summary Get a group
// @Tags groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{group_id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	group, err := h.groupService.GetGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondError(c, logger, err, "get group")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// addMembers godoc
// @Summary Add members to a group
// @Description Appends accounts to the group. Existing members are ignored; nobody is ever removed.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   members body dto.AddMembersRequest true "Accounts to add"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{group_id}/members [post]
func (h *groupHandler) addMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMembers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := callerID(c, logger)
	if !ok {
		return
	}

	members, err := identity.ResolveAll(req.Members, nil)
	if err != nil {
		respondError(c, logger, err, "add members")
		return
	}

	group, err := h.groupService.AddMembers(c.Request.Context(), groupID, members, accountID)
	if err != nil {
		respondError(c, logger, err, "add members")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// isMember godoc
// @Summary Check group membership
// @Description Reports whether an account belongs to the group. Unknown groups report false.
// @Tags groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   account path string true "Account address, full or shortened"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} map[string]string "Unresolvable account"
// @Security BearerAuth
// @Router /groups/{group_id}/members/{account}/is-member [get]
func (h *groupHandler) isMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	accountID, err := identity.Resolve(c.Param("account"), nil)
	if err != nil {
		respondError(c, logger, err, "check membership")
		return
	}

	member, err := h.groupService.IsMember(c.Request.Context(), groupID, accountID)
	if err != nil {
		respondError(c, logger, err, "check membership")
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{
		GroupID:   groupID,
		AccountID: identity.Checksum(accountID),
		IsMember:  member,
	})
}
