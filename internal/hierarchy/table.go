package hierarchy

// Json model of a batch table hierarchy
type Table struct {
	Classes         []TableClass `json:"classes"`
	InstancesLength int          `json:"instancesLength"`
	ClassIds        []int        `json:"classIds"`
	ParentCounts    []int        `json:"parentCounts"`
	ParentIds       []int        `json:"parentIds"`
}

type TableClass struct {
	Name      string                   `json:"name"`
	Length    int                      `json:"length"`
	Instances map[string][]interface{} `json:"instances"`
}

// Lays the entries out as a batch table hierarchy, instance values stored per class in
// entry order
func NewTable(entries []Entry, classes []Class) *Table {
	table := &Table{
		Classes:         make([]TableClass, len(classes)),
		InstancesLength: len(entries),
		ClassIds:        make([]int, len(entries)),
		ParentCounts:    make([]int, len(entries)),
		ParentIds:       []int{},
	}
	for i, class := range classes {
		instances := make(map[string][]interface{}, len(class.PropertyNames))
		for _, name := range class.PropertyNames {
			instances[name] = make([]interface{}, 0, class.Length)
		}
		table.Classes[i] = TableClass{Name: class.Name, Length: class.Length, Instances: instances}
	}

	for i, entry := range entries {
		table.ClassIds[i] = entry.ClassIndex
		table.ParentCounts[i] = len(entry.ParentPositions)
		table.ParentIds = append(table.ParentIds, entry.ParentPositions...)

		instances := table.Classes[entry.ClassIndex].Instances
		for name := range instances {
			instances[name] = append(instances[name], entry.Properties[name])
		}
	}
	return table
}
