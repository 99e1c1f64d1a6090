package devserver

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clusterview-dev/clusterview/internal/model"
)

// demoData is the fixed resource inventory the dev server serves. Fresh ids
// per process; the console always discovers them through list calls.
type demoData struct {
	clusters []model.Cluster
	hosts    []model.Host
	services []model.Service
	metrics  []model.MetricRecord
	alerts   []model.Alert
	logs     []model.LogEntry
}

func newDemoData() *demoData {
	now := time.Now().UTC()

	prodCluster := model.Cluster{
		ID:          ulid.Make().String(),
		Name:        "prod-east",
		Description: "Production cluster, east region",
		Status:      "RUNNING",
		HostCount:   2,
		CreatedAt:   now.Add(-90 * 24 * time.Hour),
	}
	stagingCluster := model.Cluster{
		ID:          ulid.Make().String(),
		Name:        "staging",
		Description: "Staging cluster",
		Status:      "DEGRADED",
		HostCount:   1,
		CreatedAt:   now.Add(-30 * 24 * time.Hour),
	}

	host1 := model.Host{
		ID:          ulid.Make().String(),
		ClusterID:   prodCluster.ID,
		Hostname:    "node-01.prod-east",
		IP:          "10.0.1.11",
		Status:      "ONLINE",
		CPUUsage:    42.5,
		MemoryUsage: 63.1,
		DiskUsage:   71.8,
		LastSeenAt:  now,
	}
	host2 := model.Host{
		ID:          ulid.Make().String(),
		ClusterID:   prodCluster.ID,
		Hostname:    "node-02.prod-east",
		IP:          "10.0.1.12",
		Status:      "ONLINE",
		CPUUsage:    18.2,
		MemoryUsage: 44.0,
		DiskUsage:   55.3,
		LastSeenAt:  now,
	}
	host3 := model.Host{
		ID:          ulid.Make().String(),
		ClusterID:   stagingCluster.ID,
		Hostname:    "node-01.staging",
		IP:          "10.0.2.11",
		Status:      "OFFLINE",
		CPUUsage:    0,
		MemoryUsage: 0,
		DiskUsage:   38.9,
		LastSeenAt:  now.Add(-2 * time.Hour),
	}

	services := []model.Service{
		{ID: ulid.Make().String(), ClusterID: prodCluster.ID, Name: "hdfs-namenode", Type: "HDFS", Version: "3.3.6", Status: "RUNNING"},
		{ID: ulid.Make().String(), ClusterID: prodCluster.ID, Name: "yarn-resourcemanager", Type: "YARN", Version: "3.3.6", Status: "RUNNING"},
		{ID: ulid.Make().String(), ClusterID: stagingCluster.ID, Name: "kafka-broker", Type: "Kafka", Version: "3.7.0", Status: "FAILED"},
	}

	metrics := []model.MetricRecord{
		{HostID: host1.ID, MetricName: "cpu_usage", Value: 42.5, SampledAt: now.Add(-time.Minute)},
		{HostID: host1.ID, MetricName: "memory_usage", Value: 63.1, SampledAt: now.Add(-time.Minute)},
		{HostID: host2.ID, MetricName: "cpu_usage", Value: 18.2, SampledAt: now.Add(-time.Minute)},
		{HostID: host3.ID, MetricName: "disk_usage", Value: 38.9, SampledAt: now.Add(-2 * time.Hour)},
	}

	alerts := []model.Alert{
		{
			ID:       ulid.Make().String(),
			RuleName: "host-offline",
			Severity: "CRITICAL",
			Message:  "host node-01.staging has not reported for 2h",
			HostID:   host3.ID,
			Status:   "FIRING",
			FiredAt:  now.Add(-100 * time.Minute),
		},
		{
			ID:       ulid.Make().String(),
			RuleName: "disk-high",
			Severity: "WARNING",
			Message:  "disk usage above 70% on node-01.prod-east",
			HostID:   host1.ID,
			Status:   "FIRING",
			FiredAt:  now.Add(-10 * time.Minute),
		},
	}

	logs := []model.LogEntry{
		{HostID: host1.ID, Service: "hdfs-namenode", Level: "INFO", Message: "checkpoint completed in 4.2s", Timestamp: now.Add(-5 * time.Minute)},
		{HostID: host1.ID, Service: "yarn-resourcemanager", Level: "WARN", Message: "container allocation delayed", Timestamp: now.Add(-3 * time.Minute)},
		{HostID: host3.ID, Service: "kafka-broker", Level: "ERROR", Message: "broker shut down unexpectedly", Timestamp: now.Add(-2 * time.Hour)},
	}

	return &demoData{
		clusters: []model.Cluster{prodCluster, stagingCluster},
		hosts:    []model.Host{host1, host2, host3},
		services: services,
		metrics:  metrics,
		alerts:   alerts,
		logs:     logs,
	}
}
