package models

// Dataset is the in-memory input of a run. Agents and tickets keep the order
// in which their identifiers first appeared; a repeated identifier replaces
// the earlier record in place.
type Dataset struct {
	Agents  []*Agent
	Tickets []Ticket

	agentIndex  map[string]int
	ticketIndex map[string]int
}

// NewDataset builds a Dataset applying last-write-wins to duplicate ids.
func NewDataset(agents []*Agent, tickets []Ticket) *Dataset {
	ds := &Dataset{
		Agents:      make([]*Agent, 0, len(agents)),
		Tickets:     make([]Ticket, 0, len(tickets)),
		agentIndex:  make(map[string]int, len(agents)),
		ticketIndex: make(map[string]int, len(tickets)),
	}
	for _, a := range agents {
		if i, ok := ds.agentIndex[a.ID]; ok {
			ds.Agents[i] = a
			continue
		}
		ds.agentIndex[a.ID] = len(ds.Agents)
		ds.Agents = append(ds.Agents, a)
	}
	for _, t := range tickets {
		if i, ok := ds.ticketIndex[t.ID]; ok {
			ds.Tickets[i] = t
			continue
		}
		ds.ticketIndex[t.ID] = len(ds.Tickets)
		ds.Tickets = append(ds.Tickets, t)
	}
	return ds
}

// Agent returns the agent with the given id.
func (d *Dataset) Agent(id string) (*Agent, bool) {
	i, ok := d.agentIndex[id]
	if !ok {
		return nil, false
	}
	return d.Agents[i], true
}

// Ticket returns the ticket with the given id.
func (d *Dataset) Ticket(id string) (Ticket, bool) {
	i, ok := d.ticketIndex[id]
	if !ok {
		return Ticket{}, false
	}
	return d.Tickets[i], true
}
