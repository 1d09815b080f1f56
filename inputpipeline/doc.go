// Package inputpipeline builds input pipelines for sequence-to-sequence
// training from declarative definitions.
//
// A definition names a pipeline class and its arguments:
//
//	class: ParallelTextInputPipeline
//	args:
//	  source_files: ["train.src"]
//	  target_files: ["train.tgt"]
//	  num_epochs: 5
//	  shuffle: true
//
// MakeInputPipelineFromDef parses the text, merges caller overrides over
// args and builds the pipeline through the default Registry:
//
//	p, err := inputpipeline.MakeInputPipelineFromDef(text, map[string]any{"num_epochs": 1})
//	session, err := p.MakeDataProvider(ctx)
//	examples := p.Read(session)
//	err = stream.ForEach(ctx, examples, train)
//
// Building a pipeline does no I/O. Files are opened by the reading session
// once the first example is pulled.
package inputpipeline
