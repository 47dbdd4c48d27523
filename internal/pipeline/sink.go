package pipeline

// multiSink passes every buffer to all of its sinks in order.
type multiSink []Sink

// MultiSink returns a sink that duplicates frames and audio to all sinks.
func MultiSink(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return multiSink(sinks)
}

func (m multiSink) AddVideoFrame(frame []byte) error {
	for _, s := range m {
		if err := s.AddVideoFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func (m multiSink) AddAudio(samples []byte) error {
	for _, s := range m {
		if err := s.AddAudio(samples); err != nil {
			return err
		}
	}
	return nil
}
