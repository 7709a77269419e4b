package metrics

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementFieldDefinitionCreated increments field definition creation counter
func (m *Metrics) IncrementFieldDefinitionCreated() {
	m.safeExecute("IncrementFieldDefinitionCreated", func() {
		m.FieldDefinitionCreatedTotal.Inc()
	})
}

// IncrementFieldValueWrite increments the field value upsert counter
func (m *Metrics) IncrementFieldValueWrite() {
	m.safeExecute("IncrementFieldValueWrite", func() {
		m.FieldValueWritesTotal.Inc()
	})
}

// AddOrphanedValuesDeleted records values removed by the cleanup job
func (m *Metrics) AddOrphanedValuesDeleted(count int) {
	m.safeExecute("AddOrphanedValuesDeleted", func() {
		m.OrphanedValuesDeletedTotal.Add(float64(count))
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}

// SetFieldDefinitionsTotal sets total field definitions gauge
func (m *Metrics) SetFieldDefinitionsTotal(count int64) {
	m.safeExecute("SetFieldDefinitionsTotal", func() {
		m.FieldDefinitionsTotal.Set(float64(count))
	})
}

// SetFieldValuesTotal sets total field values gauge
func (m *Metrics) SetFieldValuesTotal(count int64) {
	m.safeExecute("SetFieldValuesTotal", func() {
		m.FieldValuesTotal.Set(float64(count))
	})
}
