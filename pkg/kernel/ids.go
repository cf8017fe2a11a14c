package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type BatchJobID string

func NewBatchJobID(id string) BatchJobID { return BatchJobID(id) }
func (b BatchJobID) String() string      { return string(b) }
func (b BatchJobID) IsEmpty() bool       { return string(b) == "" }
