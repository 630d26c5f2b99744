// Package audio plays a sound when a toast appears. Sounds are configured
// per visual state and decoded with beep (WAV, OGG and MP3). A Presenter
// decorator ties playback to presentation.
package audio
