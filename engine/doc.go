// Package engine is the block render pipeline of the slew effect.
//
// An Engine splits every host buffer into sub-blocks of BlockSize samples and
// runs each through
//
//	macro modulation -> dry split -> (mid/side encode) -> 2x upsample ->
//	stage -> downsample -> (mid/side decode) -> mix and output gain
//
// Oversampling and mid/side are optional features. Processing is always in
// float64; ProcessFloat32 bridges single-precision host buffers through a
// scratch buffer.
//
// Process and ProcessBypassed run on the render thread. They never block,
// never log and do not allocate for buffers within the prepared size.
// Prepare, Reconcile and Release belong to the control thread. Reconcile
// detects an HQ toggle and re-prepares inside a Suspend bracket; a Monitor
// calls it at a fixed rate.
package engine
