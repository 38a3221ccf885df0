package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskapp/taskapp-api/internal/constants"
	"github.com/taskapp/taskapp-api/internal/database"
	"github.com/taskapp/taskapp-api/internal/dto"
	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/repository"
	"github.com/taskapp/taskapp-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GroupTaskHandlerTestSuite defines the test suite for GroupTaskHandler
type GroupTaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *GroupTaskHandler
}

// SetupTest runs before each test
func (suite *GroupTaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Collaborator{},
		&models.GroupTask{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	groupRepo := repository.NewGroupRepository(suite.db)
	taskRepo := repository.NewGroupTaskRepository(suite.db)
	groupService := services.NewGroupService(groupRepo, userRepo)
	taskService := services.NewGroupTaskService(taskRepo, groupRepo, userRepo)
	suite.handler = NewGroupTaskHandler(taskService, groupService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *GroupTaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *GroupTaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *GroupTaskHandlerTestSuite) createTestGroup(name string, adminID uint64) *models.Group {
	group := &models.Group{
		Name:    name,
		AdminID: adminID,
	}
	suite.db.Create(group)
	suite.db.Create(&models.Collaborator{
		GroupID: group.ID,
		UserID:  adminID,
		Role:    models.GroupRoleAdmin,
	})
	return group
}

func (suite *GroupTaskHandlerTestSuite) addTestCollaborator(groupID, userID uint64) {
	suite.db.Create(&models.Collaborator{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.GroupRoleCollaborator,
	})
}

func (suite *GroupTaskHandlerTestSuite) createTestTask(name string, groupID, createdByID uint64, assignedToID *uint64) *models.GroupTask {
	task := &models.GroupTask{
		Name:         name,
		Status:       models.StatusPending,
		GroupID:      groupID,
		CreatedByID:  createdByID,
		AssignedToID: assignedToID,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *GroupTaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *GroupTaskHandlerTestSuite) listTaskNames(response []dto.GroupTaskDTO) []string {
	names := make([]string, len(response))
	for i, task := range response {
		names[i] = task.Name
	}
	return names
}

// seedVisibilityFixture creates a group with admin A, collaborators B and C,
// and three tasks:
//
//	T1 created by A, assigned to B
//	T2 created by B, assigned to C
//	T3 created by C, unassigned
func (suite *GroupTaskHandlerTestSuite) seedVisibilityFixture() (a, b, c *models.User, group *models.Group) {
	a = suite.createTestUser("alice")
	b = suite.createTestUser("bob")
	c = suite.createTestUser("carol")
	group = suite.createTestGroup("Team", a.ID)
	suite.addTestCollaborator(group.ID, b.ID)
	suite.addTestCollaborator(group.ID, c.ID)

	suite.createTestTask("T1", group.ID, a.ID, &b.ID)
	suite.createTestTask("T2", group.ID, b.ID, &c.ID)
	suite.createTestTask("T3", group.ID, c.ID, nil)
	return a, b, c, group
}

// TestListTasks_AdminSeesAll tests that the group admin sees every task
func (suite *GroupTaskHandlerTestSuite) TestListTasks_AdminSeesAll() {
	a, _, _, _ := suite.seedVisibilityFixture()

	c, w := suite.createAuthContext("GET", "/api/groups/1/tasks", nil, a.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{"T1", "T2", "T3"}, suite.listTaskNames(response))
}

// TestListTasks_CollaboratorSeesAssignedAndCreated tests that a collaborator
// sees only tasks assigned to them or created by them
func (suite *GroupTaskHandlerTestSuite) TestListTasks_CollaboratorSeesAssignedAndCreated() {
	_, b, _, _ := suite.seedVisibilityFixture()

	c, w := suite.createAuthContext("GET", "/api/groups/1/tasks", nil, b.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	// B is assigned T1 and created T2; T3 stays hidden.
	assert.ElementsMatch(suite.T(), []string{"T1", "T2"}, suite.listTaskNames(response))
}

// TestListTasks_CollaboratorUnionIsDeduplicated tests that a task both
// created by and assigned to the caller appears once
func (suite *GroupTaskHandlerTestSuite) TestListTasks_CollaboratorUnionIsDeduplicated() {
	_, _, carol, _ := suite.seedVisibilityFixture()

	c, w := suite.createAuthContext("GET", "/api/groups/1/tasks", nil, carol.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{"T2", "T3"}, suite.listTaskNames(response))
}

// TestListTasks_NotMember tests listing by an outsider
func (suite *GroupTaskHandlerTestSuite) TestListTasks_NotMember() {
	suite.seedVisibilityFixture()
	outsider := suite.createTestUser("outsider")

	c, w := suite.createAuthContext("GET", "/api/groups/1/tasks", nil, outsider.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListTasks_UnknownGroup tests listing against a missing group
func (suite *GroupTaskHandlerTestSuite) TestListTasks_UnknownGroup() {
	user := suite.createTestUser("alice")

	c, w := suite.createAuthContext("GET", "/api/groups/99/tasks", nil, user.ID,
		gin.Params{{Key: "id", Value: "99"}})
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_Success tests creating a fully populated task
func (suite *GroupTaskHandlerTestSuite) TestCreateTask_Success() {
	a, b, _, _ := suite.seedVisibilityFixture()

	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	requestBody := map[string]interface{}{
		"name":        "Preparar informe",
		"description": "Informe mensual de ventas",
		"deadline":    deadline.Format(time.RFC3339),
		"category":    "trabajo",
		"assigned_to": b.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups/1/tasks", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Preparar informe", response.Name)
	assert.Equal(suite.T(), models.StatusPending, response.Status)
	assert.Equal(suite.T(), "trabajo", response.Category)
	suite.Require().NotNil(response.Deadline)
	assert.True(suite.T(), deadline.Equal(*response.Deadline))
	suite.Require().NotNil(response.CreatedBy)
	assert.Equal(suite.T(), "alice", response.CreatedBy.Username)
	suite.Require().NotNil(response.AssignedTo)
	assert.Equal(suite.T(), "bob", response.AssignedTo.Username)
	assert.Nil(suite.T(), response.CompletedByID)
	assert.Nil(suite.T(), response.CompletedAt)
}

// TestCreateTask_InvalidAssignee tests assigning to a user outside the group
func (suite *GroupTaskHandlerTestSuite) TestCreateTask_InvalidAssignee() {
	a, _, _, _ := suite.seedVisibilityFixture()
	outsider := suite.createTestUser("outsider")

	requestBody := map[string]interface{}{
		"name":        "Tarea invalida",
		"assigned_to": outsider.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups/1/tasks", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "INVALID_ASSIGNMENT", response["code"])

	// Nothing was persisted
	var count int64
	suite.db.Model(&models.GroupTask{}).Where("name = ?", "Tarea invalida").Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestCreateTask_NotMember tests creation by an outsider
func (suite *GroupTaskHandlerTestSuite) TestCreateTask_NotMember() {
	suite.seedVisibilityFixture()
	outsider := suite.createTestUser("outsider")

	requestBody := map[string]interface{}{"name": "Tarea ajena"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups/1/tasks", body, outsider.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateTask_MissingName tests creation without a name
func (suite *GroupTaskHandlerTestSuite) TestCreateTask_MissingName() {
	a, _, _, _ := suite.seedVisibilityFixture()

	requestBody := map[string]interface{}{"description": "sin nombre"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups/1/tasks", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}})
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_PartialUpdate tests that only provided fields change
func (suite *GroupTaskHandlerTestSuite) TestUpdateTask_PartialUpdate() {
	a, b, _, group := suite.seedVisibilityFixture()
	task := suite.createTestTask("Original", group.ID, a.ID, &b.ID)
	task.Description = "descripcion original"
	suite.db.Save(task)

	requestBody := map[string]interface{}{"name": "Renombrada"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/4", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "4"}})
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renombrada", response.Name)
	assert.Equal(suite.T(), "descripcion original", response.Description)
	suite.Require().NotNil(response.AssignedTo)
	assert.Equal(suite.T(), "bob", response.AssignedTo.Username)
}

// TestUpdateTask_ClearAssignee tests that assigned_to null removes the assignee
func (suite *GroupTaskHandlerTestSuite) TestUpdateTask_ClearAssignee() {
	a, b, _, group := suite.seedVisibilityFixture()
	suite.createTestTask("Asignada", group.ID, a.ID, &b.ID)

	requestBody := map[string]interface{}{"assigned_to": nil}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/4", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "4"}})
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.AssignedTo)

	var stored models.GroupTask
	suite.Require().NoError(suite.db.First(&stored, 4).Error)
	assert.Nil(suite.T(), stored.AssignedToID)
}

// TestUpdateTask_PreservesCompletionMetadata tests that reopening a task
// leaves completed_by and completed_at untouched
func (suite *GroupTaskHandlerTestSuite) TestUpdateTask_PreservesCompletionMetadata() {
	a, _, _, group := suite.seedVisibilityFixture()
	task := suite.createTestTask("Completada", group.ID, a.ID, nil)
	completedAt := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	task.Status = models.StatusCompleted
	task.CompletedByID = &a.ID
	task.CompletedAt = &completedAt
	suite.db.Save(task)

	requestBody := map[string]interface{}{"status": models.StatusPending}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/4", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "4"}})
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.GroupTask
	suite.Require().NoError(suite.db.First(&stored, 4).Error)
	assert.Equal(suite.T(), models.StatusPending, stored.Status)
	suite.Require().NotNil(stored.CompletedByID)
	assert.Equal(suite.T(), a.ID, *stored.CompletedByID)
	assert.NotNil(suite.T(), stored.CompletedAt)
}

// TestUpdateTask_InvalidAssignee tests reassignment to an outsider
func (suite *GroupTaskHandlerTestSuite) TestUpdateTask_InvalidAssignee() {
	a, _, _, group := suite.seedVisibilityFixture()
	suite.createTestTask("Tarea", group.ID, a.ID, nil)
	outsider := suite.createTestUser("outsider")

	requestBody := map[string]interface{}{"assigned_to": outsider.ID}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/4", body, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "4"}})
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var stored models.GroupTask
	suite.Require().NoError(suite.db.First(&stored, 4).Error)
	assert.Nil(suite.T(), stored.AssignedToID)
}

// TestUpdateTask_WrongGroup tests addressing a task through another group
func (suite *GroupTaskHandlerTestSuite) TestUpdateTask_WrongGroup() {
	a, _, _, _ := suite.seedVisibilityFixture()
	suite.createTestGroup("Otro", a.ID)

	requestBody := map[string]interface{}{"name": "Renombrada"}
	body, _ := json.Marshal(requestBody)

	// Task 1 belongs to group 1, not to the new group.
	c, w := suite.createAuthContext("PUT", "/api/groups/2/tasks/1", body, a.ID,
		gin.Params{{Key: "id", Value: "2"}, {Key: "task_id", Value: "1"}})
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCompleteTask_Success tests completion by a collaborator
func (suite *GroupTaskHandlerTestSuite) TestCompleteTask_Success() {
	_, b, _, _ := suite.seedVisibilityFixture()

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/1/complete", nil, b.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "1"}})
	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.GroupTaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusCompleted, response.Status)
	suite.Require().NotNil(response.CompletedByID)
	assert.Equal(suite.T(), b.ID, *response.CompletedByID)
	assert.NotNil(suite.T(), response.CompletedAt)
}

// TestCompleteTask_OverwritesPreviousCompletion tests completing twice
func (suite *GroupTaskHandlerTestSuite) TestCompleteTask_OverwritesPreviousCompletion() {
	a, b, _, _ := suite.seedVisibilityFixture()

	c1, w1 := suite.createAuthContext("PUT", "/api/groups/1/tasks/1/complete", nil, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "1"}})
	suite.handler.CompleteTask(c1)
	assert.Equal(suite.T(), http.StatusOK, w1.Code)

	c2, w2 := suite.createAuthContext("PUT", "/api/groups/1/tasks/1/complete", nil, b.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "1"}})
	suite.handler.CompleteTask(c2)
	assert.Equal(suite.T(), http.StatusOK, w2.Code)

	var stored models.GroupTask
	suite.Require().NoError(suite.db.First(&stored, 1).Error)
	suite.Require().NotNil(stored.CompletedByID)
	assert.Equal(suite.T(), b.ID, *stored.CompletedByID)
}

// TestCompleteTask_NotMember tests completion by an outsider
func (suite *GroupTaskHandlerTestSuite) TestCompleteTask_NotMember() {
	suite.seedVisibilityFixture()
	outsider := suite.createTestUser("outsider")

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/1/complete", nil, outsider.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "1"}})
	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCompleteTask_UnknownTask tests completing a missing task
func (suite *GroupTaskHandlerTestSuite) TestCompleteTask_UnknownTask() {
	a, _, _, _ := suite.seedVisibilityFixture()

	c, w := suite.createAuthContext("PUT", "/api/groups/1/tasks/99/complete", nil, a.ID,
		gin.Params{{Key: "id", Value: "1"}, {Key: "task_id", Value: "99"}})
	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestGroupTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GroupTaskHandlerTestSuite))
}
