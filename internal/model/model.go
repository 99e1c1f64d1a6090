package model

import (
	"encoding/json"
	"time"
)

// Response is the envelope every platform API endpoint replies with
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PageResponse is the envelope for paginated list endpoints
type PageResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// LoginRequest is the credential payload sent to POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the data payload of a successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// User represents a platform user account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"` // ACTIVE, DISABLED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the authenticated identity returned by GET /user/info.
// Privileges carries named capability grants such as VIEW_CLUSTER.
type Profile struct {
	User       User     `json:"user"`
	Roles      []string `json:"roles"`
	Privileges []string `json:"privileges"`
}

// Cluster represents a managed cluster
type Cluster struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // RUNNING, DEGRADED, STOPPED
	HostCount   int       `json:"host_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Host represents a managed host inside a cluster
type Host struct {
	ID          string    `json:"id"`
	ClusterID   string    `json:"cluster_id"`
	Hostname    string    `json:"hostname"`
	IP          string    `json:"ip"`
	Status      string    `json:"status"` // ONLINE, OFFLINE
	CPUUsage    float64   `json:"cpu_usage"`
	MemoryUsage float64   `json:"memory_usage"`
	DiskUsage   float64   `json:"disk_usage"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// Service represents a service deployed on a cluster
type Service struct {
	ID        string `json:"id"`
	ClusterID string `json:"cluster_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Version   string `json:"version"`
	Status    string `json:"status"` // RUNNING, STOPPED, FAILED
}

// MetricRecord is a single sampled metric value
type MetricRecord struct {
	HostID     string    `json:"host_id"`
	MetricName string    `json:"metric_name"`
	Value      float64   `json:"value"`
	SampledAt  time.Time `json:"sampled_at"`
}

// Alert represents a fired alert
type Alert struct {
	ID        string    `json:"id"`
	RuleName  string    `json:"rule_name"`
	Severity  string    `json:"severity"` // INFO, WARNING, CRITICAL
	Message   string    `json:"message"`
	HostID    string    `json:"host_id"`
	Status    string    `json:"status"` // FIRING, RESOLVED
	FiredAt   time.Time `json:"fired_at"`
}

// LogEntry is a collected log line
type LogEntry struct {
	HostID    string    `json:"host_id"`
	Service   string    `json:"service"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
