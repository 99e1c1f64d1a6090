package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/clusterview-dev/clusterview/internal/model"
)

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,username"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request parameters")
		return
	}

	var account Account
	if err := s.db.Where("username = ?", req.Username).First(&account).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if account.Status != "ACTIVE" {
		respondError(c, http.StatusForbidden, "account disabled")
		return
	}

	token, err := s.generateToken(account.ID, account.Username)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to generate token")
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondSuccess(c, model.LoginResponse{
		Token:  token,
		UserID: account.ID,
	})
}

func (s *Server) userInfo(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated request")
		return
	}

	respondSuccess(c, model.Profile{
		User: model.User{
			ID:        account.ID,
			Username:  account.Username,
			Email:     account.Email,
			Status:    account.Status,
			CreatedAt: account.CreatedAt,
			UpdatedAt: account.UpdatedAt,
		},
		Roles:      account.RoleList(),
		Privileges: account.PrivilegeList(),
	})
}

func (s *Server) changePassword(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated request")
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request parameters")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
		respondError(c, http.StatusBadRequest, "old password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := s.db.Model(account).Update("password_hash", string(hash)).Error; err != nil {
		s.log.Error().Err(err).Msg("failed to update password")
		respondError(c, http.StatusInternalServerError, "failed to update password")
		return
	}

	respondSuccess(c, nil)
}

func (s *Server) listClusters(c *gin.Context) {
	page, size := pageParams(c, 10)
	start, end := pageBounds(len(s.data.clusters), page, size)
	respondPage(c, s.data.clusters[start:end], len(s.data.clusters), page, size)
}

func (s *Server) getCluster(c *gin.Context) {
	id := c.Param("id")
	for _, cluster := range s.data.clusters {
		if cluster.ID == id {
			respondSuccess(c, cluster)
			return
		}
	}
	respondError(c, http.StatusNotFound, "cluster not found")
}

func (s *Server) listHosts(c *gin.Context) {
	page, size := pageParams(c, 10)
	start, end := pageBounds(len(s.data.hosts), page, size)
	respondPage(c, s.data.hosts[start:end], len(s.data.hosts), page, size)
}

func (s *Server) getHost(c *gin.Context) {
	id := c.Param("id")
	for _, host := range s.data.hosts {
		if host.ID == id {
			respondSuccess(c, host)
			return
		}
	}
	respondError(c, http.StatusNotFound, "host not found")
}

func (s *Server) listServices(c *gin.Context) {
	page, size := pageParams(c, 10)
	start, end := pageBounds(len(s.data.services), page, size)
	respondPage(c, s.data.services[start:end], len(s.data.services), page, size)
}

func (s *Server) getService(c *gin.Context) {
	id := c.Param("id")
	for _, service := range s.data.services {
		if service.ID == id {
			respondSuccess(c, service)
			return
		}
	}
	respondError(c, http.StatusNotFound, "service not found")
}

func (s *Server) listMetrics(c *gin.Context) {
	records := s.data.metrics
	if hostID := c.Query("host_id"); hostID != "" {
		filtered := make([]model.MetricRecord, 0, len(records))
		for _, r := range records {
			if r.HostID == hostID {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	respondSuccess(c, records)
}

func (s *Server) listAlerts(c *gin.Context) {
	respondSuccess(c, s.data.alerts)
}

func (s *Server) queryLogs(c *gin.Context) {
	entries := s.data.logs
	if hostID := c.Query("host_id"); hostID != "" {
		filtered := make([]model.LogEntry, 0, len(entries))
		for _, e := range entries {
			if e.HostID == hostID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	page, size := pageParams(c, 50)
	start, end := pageBounds(len(entries), page, size)
	respondPage(c, entries[start:end], len(entries), page, size)
}
